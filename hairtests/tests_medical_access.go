package hairtests

import (
	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/servicedef"

	"github.com/google/uuid"
)

var accessSessionFields = []string{"id", "status", "requestedAt", "professionalId"}

func (e *environment) medicalAccessTests() []framework.TestCase {
	auth := e.hasAccessToken()
	created := e.hasResource(AccessSession)
	return []framework.TestCase{
		// The professional side has no way to create a session, so the request names a new one.
		e.testCase("Professional Request Access", func(t *T) {
			sessionID := servicedef.ID(uuid.NewString())
			resp := t.Call(EndpointRequestAccess, WithAuth(), WithID(sessionID), WithBody(servicedef.RequestAccessParams{
				ProfessionalID: uuid.NewString(),
				Reason:         "Patient requested access for review",
			}))
			t.requireCreated(resp, accessSessionFields...)
			var session servicedef.AccessSession
			t.decode(resp, &session)
			t.Session().SetResource(AccessSession, session.ID)
			t.Notef("access requested for session %s", session.ID)
		}, auth),
		e.testCase("Get Professional Access Sessions", func(t *T) {
			resp := t.Call(EndpointListAccessSessions, WithAuth())
			t.requireSuccess(resp)
			t.Notef("retrieved %d medical access sessions", t.requireList(resp))
		}, auth),
		e.testCase("Get Professional Access Session by ID", func(t *T) {
			id := t.requireResource(AccessSession)
			resp := t.Call(EndpointGetAccessSession, WithAuth(), WithID(id))
			t.requireSuccess(resp, accessSessionFields...)
			t.Notef("medical access session retrieved")
		}, auth, created),
		e.testCase("Approve Professional Access", func(t *T) {
			id := t.requireResource(AccessSession)
			t.requireSuccess(t.Call(EndpointApproveAccess, WithAuth(), WithID(id)))
			t.Notef("access approved for session %s", id)
		}, auth, created),
		e.testCase("Deny Professional Access", func(t *T) {
			id := t.requireResource(AccessSession)
			t.requireSuccess(t.Call(EndpointDenyAccess, WithAuth(), WithID(id)))
			t.Notef("access denied for session %s", id)
		}, auth, created),
	}
}
