package hairtests

import (
	"net/http"

	"github.com/hairhealth/api-contract-tests/framework"
)

func (e *environment) cleanupTests() []framework.TestCase {
	return []framework.TestCase{
		e.testCase("Delete Current User (me)", func(t *T) {
			resp := t.Call(EndpointDeleteMe, WithAuth())
			t.requireStatus(resp, http.StatusOK, http.StatusNoContent)
			t.Session().Clear()
			t.Notef("account deleted")
		}, e.accountDeletionEnabled(), e.hasAccessToken()),
		e.testCase("User Logout", func(t *T) {
			t.requireSuccess(t.Call(EndpointLogout, WithAuth()))
			t.Session().ClearTokens()
			t.Notef("logout successful")
		}, e.hasAccessToken()),
	}
}
