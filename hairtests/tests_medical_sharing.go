package hairtests

import (
	"fmt"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/servicedef"
)

var sharingSessionFields = []string{"sessionId", "professionalId", "accessUrl", "expiresAt"}

func (e *environment) medicalSharingTests() []framework.TestCase {
	auth := e.hasAccessToken()
	created := e.hasResource(SharingSession)
	return []framework.TestCase{
		e.testCase("Create Medical Sharing Session", func(t *T) {
			resp := t.Call(EndpointCreateSharingSession, WithAuth(), WithBody(servicedef.CreateSharingSessionParams{
				ProfessionalEmail:   fmt.Sprintf("pro_%s@example.com", t.Session().Credentials.Token),
				AccessDurationHours: 24,
				Notes:               "Automated test sharing session",
			}))
			t.requireCreated(resp, sharingSessionFields...)
			var session servicedef.SharingSession
			t.decode(resp, &session)
			t.Session().SetResource(SharingSession, session.SessionID)
			t.Notef("medical sharing session created: %s", session.SessionID)
		}, auth),
		e.testCase("Get Medical Sharing Sessions", func(t *T) {
			resp := t.Call(EndpointListSharingSessions, WithAuth())
			t.requireSuccess(resp)
			t.Notef("retrieved %d medical sharing sessions", t.requireList(resp))
		}, auth),
		e.testCase("Get Medical Sharing Session by ID", func(t *T) {
			id := t.requireResource(SharingSession)
			resp := t.Call(EndpointGetSharingSession, WithAuth(), WithID(id))
			t.requireSuccess(resp, sharingSessionFields...)
			t.Notef("medical sharing session retrieved")
		}, auth, created),
		e.testCase("Revoke Medical Sharing Session", func(t *T) {
			id := t.requireResource(SharingSession)
			resp := t.Call(EndpointRevokeSharingSession, WithAuth(), WithID(id),
				WithBody(servicedef.RevokeSharingSessionParams{Reason: "Automated test revocation"}))
			t.requireSuccess(resp)
			t.Session().ClearResource(SharingSession)
			t.Notef("medical sharing session %s revoked", id)
		}, auth, created),
	}
}
