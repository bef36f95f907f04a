package hairtests

import (
	"net/http"

	"github.com/hairhealth/api-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type validationProbe struct {
	name         string
	endpoint     Endpoint
	body         ldvalue.Value
	shouldReject bool
}

func (e *environment) inputValidationTests() []framework.TestCase {
	date := ldvalue.String(e.today())
	hairFallLog := func(count int, date ldvalue.Value, category string) ldvalue.Value {
		return ldvalue.ObjectBuild().
			Set("date", date).
			Set("count", ldvalue.Int(count)).
			Set("category", ldvalue.String(category)).
			Build()
	}
	intervention := func(interventionType, productName string, startDate ldvalue.Value) ldvalue.Value {
		return ldvalue.ObjectBuild().
			Set("type", ldvalue.String(interventionType)).
			Set("productName", ldvalue.String(productName)).
			Set("frequency", ldvalue.String("Daily")).
			Set("startDate", startDate).
			Build()
	}

	probes := []validationProbe{
		{"Negative hair count", EndpointCreateHairFallLog, hairFallLog(-5, date, "SHOWER"), true},
		{"Invalid hair fall date", EndpointCreateHairFallLog, hairFallLog(50, ldvalue.String("invalid-date"), "SHOWER"), true},
		{"Invalid hair fall category", EndpointCreateHairFallLog, hairFallLog(50, date, "INVALID_CATEGORY"), true},
		{"Missing hair fall fields", EndpointCreateHairFallLog,
			ldvalue.ObjectBuild().Set("count", ldvalue.Int(50)).Build(), true},
		{"Extremely large hair count", EndpointCreateHairFallLog, hairFallLog(999999, date, "SHOWER"), false},
		{"Invalid intervention type", EndpointCreateIntervention, intervention("INVALID_TYPE", "Test", date), true},
		{"Empty product name", EndpointCreateIntervention, intervention("TOPICAL", "", date), true},
		{"Missing intervention fields", EndpointCreateIntervention,
			ldvalue.ObjectBuild().Set("productName", ldvalue.String("Test Product")).Build(), true},
		{"Invalid intervention date", EndpointCreateIntervention,
			intervention("TOPICAL", "Test", ldvalue.String("invalid-date")), true},
	}

	var ret []framework.TestCase
	for _, p := range probes {
		probe := p
		ret = append(ret, e.testCase(probe.name, func(t *T) { doValidationProbe(t, probe) }, e.hasAccessToken()))
	}
	return ret
}

func doValidationProbe(t *T, p validationProbe) {
	resp := t.Call(p.endpoint, WithAuth(), WithBody(p.body))
	t.requireResponse(resp)
	accepted := hasStatus(resp, http.StatusOK, http.StatusCreated)
	switch {
	case p.shouldReject && hasStatus(resp, http.StatusBadRequest, http.StatusUnprocessableEntity):
		t.Notef("properly rejected with %d", resp.StatusCode)
	case p.shouldReject && accepted:
		t.Errorf("SECURITY: %s incorrectly accepted", p.name)
	case p.shouldReject:
		t.Warnf("unexpected status %d", resp.StatusCode)
	case accepted:
		t.Notef("properly accepted")
	default:
		t.Warnf("rejected with %d", resp.StatusCode)
	}
}
