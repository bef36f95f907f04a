package hairtests

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/internal/twin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAgainstTwin(t *testing.T, options Options, filter framework.Filter) (framework.Results, *Session) {
	server := httptest.NewServer(twin.New(twin.Config{}))
	t.Cleanup(server.Close)

	harness, err := framework.NewTestHarness(server.URL, 5*time.Second, time.Second, nil, io.Discard)
	require.NoError(t, err)

	session := NewSession(NewCredentials("1700000000"))
	options.Credentials = session.Credentials
	results := framework.RunPhases(filter, nil, Phases(harness.Client(), session, options))
	return results, session
}

func describeFailures(results framework.Results) []string {
	var ret []string
	for _, o := range []framework.Outcome{framework.OutcomeFail, framework.OutcomeWarn} {
		for _, r := range results.WithOutcome(o) {
			ret = append(ret, string(o)+" "+r.TestID.String()+": "+r.Message)
		}
	}
	return ret
}

func TestFullSuiteAgainstTwin(t *testing.T) {
	results, session := runAgainstTwin(t, testOptions(), nil)

	phases := Phases(nil, NewSession(Credentials{}), testOptions())
	require.Len(t, results.Tests, framework.CaseCount(phases))
	assert.Empty(t, describeFailures(results))

	skipped := results.WithOutcome(framework.OutcomeSkip)
	require.Len(t, skipped, 1)
	assert.Equal(t, "cleanup/Delete Current User (me)", skipped[0].TestID.String())
	assert.Equal(t, "account deletion not enabled", skipped[0].Message)

	var coverage framework.TestResult
	for _, r := range results.Tests {
		if r.TestID.Name() == "API Endpoint Coverage" {
			coverage = r
		}
	}
	assert.Equal(t, "good coverage: 46/48 endpoints (95.8%)", coverage.Message)

	assert.False(t, session.AccessToken.IsDefined(), "logout clears tokens")
	assert.True(t, session.UserID.IsDefined())

	summary := framework.Summarize(results, true)
	assert.True(t, summary.Success)
	assert.Equal(t, framework.AssessmentExcellent, summary.Assessment)
}

func TestFullSuiteWithAccountDeletion(t *testing.T) {
	options := testOptions()
	options.DeleteAccount = true
	results, session := runAgainstTwin(t, options, nil)

	assert.Empty(t, describeFailures(results))
	skipped := results.WithOutcome(framework.OutcomeSkip)
	require.Len(t, skipped, 1)
	assert.Equal(t, "cleanup/User Logout", skipped[0].TestID.String())
	assert.Equal(t, "no access token", skipped[0].Message)
	assert.False(t, session.UserID.IsDefined())
}

func TestFilteredRunRecordsExcludedCasesAsSkipped(t *testing.T) {
	filters := framework.RegexFilters{}
	require.NoError(t, filters.MustMatch.Set("^health/"))
	results, _ := runAgainstTwin(t, testOptions(), filters.AsFilter)

	assert.Equal(t, 3, results.Count(framework.OutcomePass))
	assert.Equal(t, len(results.Tests)-3, results.Count(framework.OutcomeSkip))
	for _, r := range results.WithOutcome(framework.OutcomeSkip) {
		assert.Equal(t, "excluded by filter parameters", r.Message, r.TestID.String())
	}
}

func TestPhaseOrder(t *testing.T) {
	var names []string
	for _, p := range Phases(nil, newTestSession(), testOptions()) {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{
		"health",
		"authentication",
		"registration edge cases",
		"hair fall logs",
		"interventions",
		"progress photos",
		"medical sharing",
		"professional medical access",
		"users",
		"dev",
		"input validation",
		"authentication security",
		"coverage",
		"cleanup",
	}, names)
}
