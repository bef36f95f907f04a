package framework

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintResults(t *testing.T) {
	results := Results{Tests: []TestResult{
		{TestID: TestID{Path: []string{"health", "health check"}}, Outcome: OutcomePass},
		{TestID: TestID{Path: []string{"authentication", "login"}}, Outcome: OutcomeFail, Message: "expected 200, got 500\nsecond line"},
		{TestID: TestID{Path: []string{"users", "get user by ID"}}, Outcome: OutcomeWarn, Message: "endpoint may not be implemented"},
	}}
	var buf bytes.Buffer
	PrintResults(&buf, Summarize(results, true), false)
	out := buf.String()

	assert.Contains(t, out, "TEST SUMMARY")
	assert.Contains(t, out, "Total:    3\n")
	assert.Contains(t, out, "Passed:   1\n")
	assert.Contains(t, out, "Success rate: 33.3% (1/3)")
	assert.Contains(t, out, "FAILED TESTS (1):\n  - authentication/login: expected 200, got 500\n      second line\n")
	assert.Contains(t, out, "WARNINGS (1):\n  - users/get user by ID: endpoint may not be implemented\n")
	assert.Contains(t, out, "Assessment: GOOD")
	assert.Contains(t, out, "Result: FAILED (strict mode, warnings count as failures)")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintResultsWithNothingExecuted(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, Summarize(Results{}, false), false)
	assert.Contains(t, buf.String(), "Success rate: n/a (no tests executed)")
	assert.Contains(t, buf.String(), "Result: PASSED\n")
	assert.NotContains(t, buf.String(), "FAILED TESTS")
}

func TestWriteJSON(t *testing.T) {
	s := Summarize(Results{Tests: []TestResult{
		{TestID: TestID{Path: []string{"a", "b"}}, Outcome: OutcomePass},
	}}, false)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, s))

	var decoded Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, s, decoded)
	assert.Contains(t, buf.String(), `"successRate": 100`)
}
