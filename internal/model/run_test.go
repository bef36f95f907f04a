package model

import (
	"testing"
	"time"

	"github.com/hairhealth/api-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSummary(t *testing.T) {
	results := framework.Results{Tests: []framework.TestResult{
		{TestID: framework.TestID{Path: []string{"health", "Health Check"}}, Outcome: framework.OutcomePass,
			Message: "service is healthy", Duration: 12 * time.Millisecond},
		{TestID: framework.TestID{Path: []string{"authentication security", "Invalid Password"}}, Outcome: framework.OutcomeFail,
			Message: "CRITICAL: invalid password accepted"},
	}}
	summary := framework.Summarize(results, false)
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	run := FromSummary(summary, results, "http://localhost:8080", start, start.Add(2*time.Second))

	assert.Equal(t, "http://localhost:8080", run.BaseURL)
	assert.Equal(t, 2, run.Total)
	assert.Equal(t, 1, run.Passed)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, 1, run.SecurityIssues)
	assert.False(t, run.Success)
	assert.Equal(t, string(framework.AssessmentGood), run.Assessment)
	assert.Equal(t, int64(2000), run.DurationMS())
	require.Len(t, run.Results, 2)
	assert.Equal(t, Result{Phase: "health", Name: "Health Check", Outcome: "PASS",
		Message: "service is healthy", DurationMS: 12}, run.Results[0])
	assert.Equal(t, "authentication security", run.Results[1].Phase)
}
