package hairtests

import (
	"encoding/json"
	"strings"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/servicedef"
)

var (
	authResponseFields = []string{"accessToken", "refreshToken", "user"}
	userFields         = []string{"id", "email", "username", "isEmailVerified"}
)

func (e *environment) authenticationTests() []framework.TestCase {
	return []framework.TestCase{
		e.testCase("User Registration", doRegistrationTest),
		e.testCase("User Login", doLoginTest),
		e.testCase("Get Current User", doGetCurrentUserTest, e.hasAccessToken()),
		e.testCase("Token Refresh", doTokenRefreshTest, e.hasRefreshToken()),
	}
}

func doRegistrationTest(t *T) {
	credentials := t.Session().Credentials
	resp := t.Call(EndpointRegister, WithBody(servicedef.RegisterParams{
		Email:    credentials.Email,
		Password: credentials.Password,
		Username: credentials.Username,
	}))
	t.requireSuccess(resp, authResponseFields...)

	var auth servicedef.AuthResponse
	t.decode(resp, &auth)
	t.Session().SetTokens(auth.AccessToken, auth.RefreshToken)

	var raw struct {
		User json.RawMessage `json:"user"`
	}
	t.decode(resp, &raw)
	if ok, missing := framework.HasFields(raw.User, "id", "email", "username"); !ok {
		t.Fatalf("invalid user schema, missing: %s", strings.Join(missing, ", "))
	}
	t.Session().SetUserID(auth.User.ID)

	if auth.User.Email != credentials.Email {
		t.Warnf("email mismatch: sent %s, got %s", credentials.Email, auth.User.Email)
	}
	if auth.User.Username != credentials.Username {
		t.Warnf("username mismatch: sent %s, got %s", credentials.Username, auth.User.Username)
	}
	t.Notef("user registered: %s", auth.User.ID)
}

func doLoginTest(t *T) {
	credentials := t.Session().Credentials
	resp := t.Call(EndpointLogin, WithBody(servicedef.LoginParams{
		Email:    credentials.Email,
		Password: credentials.Password,
	}))
	t.requireSuccess(resp, authResponseFields...)

	var auth servicedef.AuthResponse
	t.decode(resp, &auth)
	t.Session().SetTokens(auth.AccessToken, auth.RefreshToken)
	t.Notef("login successful")
}

func doGetCurrentUserTest(t *T) {
	resp := t.Call(EndpointAuthMe, WithAuth())
	t.requireSuccess(resp, userFields...)

	var user servicedef.User
	t.decode(resp, &user)
	if id := t.Session().UserID; id.IsDefined() && user.ID.String() != id.StringValue() {
		t.Fatalf("user ID mismatch: expected %s, got %s", id.StringValue(), user.ID)
	}
	t.Notef("current user retrieved")
}

func doTokenRefreshTest(t *T) {
	resp := t.Call(EndpointRefreshToken, WithBody(servicedef.RefreshTokenParams{
		RefreshToken: t.Session().RefreshToken.StringValue(),
	}))
	t.requireSuccess(resp, authResponseFields...)

	var auth servicedef.AuthResponse
	t.decode(resp, &auth)
	t.Session().SetTokens(auth.AccessToken, auth.RefreshToken)
	t.Notef("token refreshed")
}
