package hairtests

import (
	"fmt"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/servicedef"
)

var adherenceFields = []string{
	"interventionId",
	"expectedApplications",
	"actualApplications",
	"adherenceRate",
	"adherencePercentage",
	"adherenceLevel",
	"daysSinceStart",
}

func (e *environment) interventionTests() []framework.TestCase {
	auth := e.hasAccessToken()
	created := e.hasResource(Intervention)
	return []framework.TestCase{
		e.testCase("Get Interventions", func(t *T) {
			resp := t.Call(EndpointListInterventions, WithAuth(), WithQuery("includeInactive", false))
			t.requireSuccess(resp)
			t.Notef("retrieved %d interventions", t.requireList(resp))
		}, auth),
		e.testCase("Create Intervention", func(t *T) {
			resp := t.Call(EndpointCreateIntervention, WithAuth(), WithBody(servicedef.CreateInterventionParams{
				Type:            servicedef.InterventionTopical,
				ProductName:     fmt.Sprintf("Test Minoxidil %s", t.Session().Credentials.Token),
				DosageAmount:    "1ml",
				Frequency:       "Twice Daily",
				ApplicationTime: "08:00, 20:00",
				StartDate:       e.today(),
				Notes:           "Automated test intervention",
			}))
			t.requireCreated(resp, "id", "userId", "type", "productName", "frequency", "startDate", "isActive")
			var intervention servicedef.Intervention
			t.decode(resp, &intervention)
			t.Session().SetResource(Intervention, intervention.ID)
			t.Notef("intervention created: %s", intervention.ID)
		}, auth),
		e.testCase("Get Intervention by ID", func(t *T) {
			id := t.requireResource(Intervention)
			resp := t.Call(EndpointGetIntervention, WithAuth(), WithID(id))
			t.requireSuccess(resp, "id", "userId", "type", "productName", "frequency")
			t.Notef("intervention retrieved")
		}, auth, created),
		e.testCase("Update Intervention", func(t *T) {
			id := t.requireResource(Intervention)
			resp := t.Call(EndpointUpdateIntervention, WithAuth(), WithID(id), WithBody(servicedef.UpdateInterventionParams{
				ProductName:  fmt.Sprintf("Updated Minoxidil %s", t.Session().Credentials.Token),
				DosageAmount: "1.5ml",
				Frequency:    "Once Daily",
			}))
			t.requireSuccess(resp)
			t.Notef("intervention %s updated", id)
		}, auth, created),
		e.testCase("Log Intervention Application", func(t *T) {
			id := t.requireResource(Intervention)
			resp := t.Call(EndpointLogApplication, WithAuth(), WithID(id), WithBody(servicedef.LogApplicationParams{
				Timestamp: e.timestamp(),
				Notes:     "Automated test application",
			}))
			t.requireCreated(resp, "id", "interventionId", "userId", "timestamp", "createdAt")
			var application servicedef.InterventionApplication
			t.decode(resp, &application)
			if application.InterventionID != id {
				t.Fatalf("intervention ID mismatch: expected %s, got %s", id, application.InterventionID)
			}
			t.Notef("application logged: %s", application.ID)
		}, auth, created),
		e.testCase("Get Intervention Applications", func(t *T) {
			id := t.requireResource(Intervention)
			resp := t.Call(EndpointListApplications, WithAuth(), WithID(id), WithQuery("limit", 10), WithQuery("offset", 0))
			t.requireSuccess(resp)
			t.Notef("retrieved %d applications", t.requireList(resp))
		}, auth, created),
		e.testCase("Get Intervention Adherence", func(t *T) {
			id := t.requireResource(Intervention)
			resp := t.Call(EndpointAdherenceStats, WithAuth(), WithID(id))
			t.requireSuccess(resp, adherenceFields...)
			t.Notef("adherence stats retrieved")
		}, auth, created),
		e.testCase("Get Active Interventions", func(t *T) {
			resp := t.Call(EndpointActiveInterventions, WithAuth())
			t.requireSuccess(resp)
			t.Notef("retrieved %d active interventions", t.requireList(resp))
		}, auth),
		e.testCase("Deactivate Intervention", func(t *T) {
			id := t.requireResource(Intervention)
			resp := t.Call(EndpointDeactivateIntervention, WithAuth(), WithID(id))
			t.requireSuccess(resp)
			t.Notef("intervention %s deactivated", id)
		}, auth, created),
	}
}
