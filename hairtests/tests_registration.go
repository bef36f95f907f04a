package hairtests

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func (e *environment) registrationEdgeCaseTests() []framework.TestCase {
	return []framework.TestCase{
		e.testCase("Duplicate Email", doDuplicateEmailTest, e.hasUserID()),
		e.testCase("Empty Username", func(t *T) {
			email := fmt.Sprintf("empty_user_%s@test.com", t.Session().Credentials.Token)
			doDefaultUsernameTest(t, "empty username", email, ldvalue.ObjectBuild().
				Set("email", ldvalue.String(email)).
				Set("password", ldvalue.String("test_password_123")).
				Set("username", ldvalue.String("")).
				Build())
		}),
		e.testCase("Missing Username", func(t *T) {
			email := fmt.Sprintf("missing_user_%s@test.com", t.Session().Credentials.Token)
			doDefaultUsernameTest(t, "missing username", email, ldvalue.ObjectBuild().
				Set("email", ldvalue.String(email)).
				Set("password", ldvalue.String("test_password_123")).
				Build())
		}),
		e.testCase("Uppercase Email", doUppercaseEmailTest, e.hasUserID()),
	}
}

func doDuplicateEmailTest(t *T) {
	resp := t.Call(EndpointRegister, WithBody(servicedef.RegisterParams{
		Email:    t.Session().Credentials.Email,
		Password: "different_password_123",
		Username: "different_username",
	}))
	t.requireResponse(resp)
	switch {
	case hasStatus(resp, http.StatusBadRequest, http.StatusConflict):
		t.Notef("duplicate email properly rejected with %d", resp.StatusCode)
	case resp.StatusCode == http.StatusOK:
		var auth servicedef.AuthResponse
		t.decode(resp, &auth)
		if auth.User.ID.String() == t.Session().UserID.StringValue() {
			t.Notef("duplicate email returns the existing user")
			return
		}
		t.Errorf("duplicate email created a new user (%s)", auth.User.ID)
	default:
		t.Warnf("duplicate email: unexpected status %d", resp.StatusCode)
	}
}

// doDefaultUsernameTest registers an account without a usable username. The service may
// either reject it, or default the username to the email address.
func doDefaultUsernameTest(t *T, what, email string, body ldvalue.Value) {
	resp := t.Call(EndpointRegister, WithBody(body))
	t.requireResponse(resp)
	switch {
	case hasStatus(resp, http.StatusBadRequest, http.StatusUnprocessableEntity):
		t.Notef("%s properly rejected with %d", what, resp.StatusCode)
	case resp.StatusCode == http.StatusOK:
		var auth servicedef.AuthResponse
		t.decode(resp, &auth)
		switch auth.User.Username {
		case email:
			t.Notef("%s correctly defaults to email", what)
		case "":
			t.Warnf("%s stays empty", what)
		default:
			t.Warnf("%s became %q", what, auth.User.Username)
		}
	default:
		t.Warnf("%s: unexpected status %d", what, resp.StatusCode)
	}
}

func doUppercaseEmailTest(t *T) {
	resp := t.Call(EndpointRegister, WithBody(servicedef.RegisterParams{
		Email:    strings.ToUpper(t.Session().Credentials.Email),
		Password: "case_test_password_123",
		Username: "case_test_user",
	}))
	t.requireResponse(resp)
	switch {
	case hasStatus(resp, http.StatusBadRequest, http.StatusConflict):
		t.Notef("email is properly treated as case-insensitive")
	case resp.StatusCode == http.StatusOK:
		t.Errorf("uppercase variant of a registered email created a new user")
	default:
		t.Warnf("uppercase email: unexpected status %d", resp.StatusCode)
	}
}
