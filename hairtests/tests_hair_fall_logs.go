package hairtests

import (
	"encoding/json"
	"net/http"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/servicedef"
)

const updatedHairFallCount = 50

func (e *environment) hairFallLogTests() []framework.TestCase {
	auth := e.hasAccessToken()
	created := e.hasResource(HairFallLog)
	return []framework.TestCase{
		e.testCase("Get Hair Fall Logs", func(t *T) {
			resp := t.Call(EndpointListHairFallLogs, WithAuth(), WithQuery("limit", 10), WithQuery("offset", 0))
			t.requireSuccess(resp)
			t.Notef("retrieved %d hair fall logs", t.requireList(resp))
		}, auth),
		e.testCase("Create Hair Fall Log", func(t *T) {
			resp := t.Call(EndpointCreateHairFallLog, WithAuth(), WithBody(servicedef.CreateHairFallLogParams{
				Date:        e.today(),
				Count:       45,
				Category:    servicedef.CategoryShower,
				Description: "Automated test log entry",
			}))
			t.requireCreated(resp, "id", "userId", "date", "category", "createdAt", "updatedAt")
			var log servicedef.HairFallLog
			t.decode(resp, &log)
			t.Session().SetResource(HairFallLog, log.ID)
			t.Notef("hair fall log created: %s", log.ID)
		}, auth),
		e.testCase("Get Hair Fall Log by ID", func(t *T) {
			id := t.requireResource(HairFallLog)
			resp := t.Call(EndpointGetHairFallLog, WithAuth(), WithID(id))
			t.requireSuccess(resp, "id", "userId", "date", "category")
			var log servicedef.HairFallLog
			t.decode(resp, &log)
			if log.ID != id {
				t.Fatalf("hair fall log ID mismatch: expected %s, got %s", id, log.ID)
			}
			t.Notef("hair fall log retrieved")
		}, auth, created),
		e.testCase("Update Hair Fall Log", func(t *T) {
			id := t.requireResource(HairFallLog)
			resp := t.Call(EndpointUpdateHairFallLog, WithAuth(), WithID(id), WithBody(servicedef.UpdateHairFallLogParams{
				Count:       updatedHairFallCount,
				Description: "Updated test description",
			}))
			t.requireSuccess(resp)
			var log servicedef.HairFallLog
			if json.Unmarshal(resp.Body, &log) == nil && log.Count.IsDefined() &&
				log.Count.IntValue() != updatedHairFallCount {
				t.Fatalf("count mismatch: sent %d, got %d", updatedHairFallCount, log.Count.IntValue())
			}
			t.Notef("hair fall log updated")
		}, auth, created),
		e.testCase("Get Hair Fall Stats", func(t *T) {
			resp := t.Call(EndpointHairFallStats, WithAuth())
			t.requireSuccess(resp, "totalLogs", "recentTrend")
			t.Notef("hair fall stats retrieved")
		}, auth),
		e.testCase("Get Hair Fall Logs by Date Range", func(t *T) {
			now := e.options.now()
			resp := t.Call(EndpointHairFallLogDateRange, WithAuth(),
				WithQuery("startDate", now.AddDate(0, 0, -30).Format(servicedef.DateFormat)),
				WithQuery("endDate", now.Format(servicedef.DateFormat)))
			t.requireSuccess(resp)
			t.Notef("retrieved %d hair fall logs in date range", t.requireList(resp))
		}, auth),
		e.testCase("Delete Hair Fall Log", func(t *T) {
			id := t.requireResource(HairFallLog)
			resp := t.Call(EndpointDeleteHairFallLog, WithAuth(), WithID(id))
			t.requireStatus(resp, http.StatusOK, http.StatusNoContent)
			t.Session().ClearResource(HairFallLog)
			t.Notef("hair fall log %s deleted", id)
		}, auth, created),
	}
}
