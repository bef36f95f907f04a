package hairtests

import (
	"fmt"
	"time"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/servicedef"
)

// Options control optional behavior of a test run.
type Options struct {
	// Credentials for the account that the run registers. If Email is empty, they are
	// generated from the current time.
	Credentials Credentials
	// DeleteAccount enables the case that deletes the registered account during cleanup.
	DeleteAccount bool
	// Now is used for request dates and generated names; it defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// RunTestSuite runs every phase of the suite against the service, in order, with a new session.
func RunTestSuite(
	harness *framework.TestHarness,
	filter framework.Filter,
	testLogger framework.TestLogger,
	options Options,
) framework.Results {
	credentials := options.Credentials
	if credentials.Email == "" {
		credentials = CredentialsForTime(options.now())
	}
	session := NewSession(credentials)
	return framework.RunPhases(filter, testLogger, Phases(harness.Client(), session, options))
}

// Phases returns the suite's phases, bound to a client and a session. The phases must be run
// in the order returned, since later cases use tokens and IDs that earlier ones store in the
// session.
func Phases(client *framework.ServiceClient, session *Session, options Options) []framework.Phase {
	e := &environment{
		client:  client,
		session: session,
		options: options,
	}
	return []framework.Phase{
		{Name: "health", Cases: e.healthTests()},
		{Name: "authentication", Cases: e.authenticationTests()},
		{Name: "registration edge cases", Cases: e.registrationEdgeCaseTests()},
		{Name: "hair fall logs", Cases: e.hairFallLogTests()},
		{Name: "interventions", Cases: e.interventionTests()},
		{Name: "progress photos", Cases: e.progressPhotoTests()},
		{Name: "medical sharing", Cases: e.medicalSharingTests()},
		{Name: "professional medical access", Cases: e.medicalAccessTests()},
		{Name: "users", Cases: e.userTests()},
		{Name: "dev", Cases: e.devTests()},
		{Name: "input validation", Cases: e.inputValidationTests()},
		{Name: "authentication security", Cases: e.authenticationSecurityTests()},
		{Name: "coverage", Cases: e.coverageTests()},
		{Name: "cleanup", Cases: e.cleanupTests()},
	}
}

func (e *environment) testCase(name string, action func(*T), requires ...framework.Precondition) framework.TestCase {
	return framework.TestCase{
		Name:     name,
		Requires: requires,
		Action: func(c *framework.Context) {
			action(&T{context: c, env: e})
		},
	}
}

func (e *environment) today() string {
	return e.options.now().Format(servicedef.DateFormat)
}

func (e *environment) timestamp() string {
	return e.options.now().UTC().Format(time.RFC3339)
}

func (e *environment) hasAccessToken() framework.Precondition {
	return framework.Precondition{
		Description: "no access token",
		Satisfied:   func() bool { return e.session.AccessToken.IsDefined() },
	}
}

func (e *environment) hasRefreshToken() framework.Precondition {
	return framework.Precondition{
		Description: "no refresh token",
		Satisfied:   func() bool { return e.session.RefreshToken.IsDefined() },
	}
}

func (e *environment) hasUserID() framework.Precondition {
	return framework.Precondition{
		Description: "no user ID",
		Satisfied:   func() bool { return e.session.UserID.IsDefined() },
	}
}

func (e *environment) hasResource(kind ResourceKind) framework.Precondition {
	return framework.Precondition{
		Description: fmt.Sprintf("no %s ID", kind),
		Satisfied: func() bool {
			_, ok := e.session.Resource(kind)
			return ok
		},
	}
}

func (e *environment) accountDeletionEnabled() framework.Precondition {
	return framework.Precondition{
		Description: "account deletion not enabled",
		Satisfied:   func() bool { return e.options.DeleteAccount },
	}
}
