package hairtests

import (
	"fmt"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/servicedef"
)

func (e *environment) userTests() []framework.TestCase {
	auth := e.hasAccessToken()
	return []framework.TestCase{
		e.testCase("Get User by ID", func(t *T) {
			id := t.Session().UserID.StringValue()
			resp := t.Call(EndpointGetUser, WithAuth(), WithPathParams(map[string]string{"id": id}))
			t.requireSuccess(resp, userFields...)
			var user servicedef.User
			t.decode(resp, &user)
			if user.ID.String() != id {
				t.Fatalf("user ID mismatch: expected %s, got %s", id, user.ID)
			}
			t.Notef("user retrieved by ID")
		}, auth, e.hasUserID()),
		e.testCase("Get Current User (me)", func(t *T) {
			resp := t.Call(EndpointGetMe, WithAuth())
			t.requireSuccess(resp, userFields...)
			t.Notef("current user retrieved")
		}, auth),
		e.testCase("Update Current User (me)", func(t *T) {
			username := fmt.Sprintf("updated_user_%s", t.Session().Credentials.Token)
			resp := t.Call(EndpointUpdateMe, WithAuth(), WithBody(servicedef.UpdateUserParams{Username: username}))
			t.requireSuccess(resp, userFields...)
			var user servicedef.User
			t.decode(resp, &user)
			if user.Username != username {
				t.Warnf("username not updated as expected: sent %s, got %s", username, user.Username)
				return
			}
			t.Notef("current user updated")
		}, auth),
	}
}
