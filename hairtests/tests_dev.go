package hairtests

import (
	"fmt"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/servicedef"
)

// These endpoints only exist on development deployments. They do not use or change the
// session's account, apart from the data that they attach to it.
func (e *environment) devTests() []framework.TestCase {
	return []framework.TestCase{
		e.testCase("Setup Test User (Dev)", func(t *T) {
			resp := t.Call(EndpointSetupTestUser)
			t.requireSuccess(resp, "userId", "accessToken")
			var setup servicedef.DevSetupResponse
			t.decode(resp, &setup)
			t.Notef("dev test user set up: %s", setup.UserID)
		}),
		e.testCase("Create Test User", func(t *T) {
			token := t.Session().Credentials.Token
			resp := t.Call(EndpointCreateTestUser, WithBody(servicedef.RegisterParams{
				Email:    fmt.Sprintf("testuser_%s@example.com", token),
				Password: "TestPass123!",
				Username: fmt.Sprintf("testuser_%s", token),
			}))
			t.requireCreated(resp, "id", "email")
			var user servicedef.User
			t.decode(resp, &user)
			t.Notef("test user created: %s", user.ID)
		}),
		e.testCase("Setup Photo Data (Dev)", func(t *T) {
			resp := t.Call(EndpointSetupPhotoData, WithQuery("userId", t.Session().UserID.StringValue()))
			t.requireSuccess(resp)
			t.Notef("dev photo data set up")
		}, e.hasUserID()),
		e.testCase("Setup Intervention Data (Dev)", func(t *T) {
			resp := t.Call(EndpointSetupInterventionData, WithQuery("userId", t.Session().UserID.StringValue()))
			t.requireSuccess(resp)
			t.Notef("dev intervention data set up")
		}, e.hasUserID()),
	}
}
