package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeResults(outcomes ...Outcome) Results {
	var r Results
	for i, o := range outcomes {
		r.Tests = append(r.Tests, TestResult{
			TestID:  TestID{Path: []string{"phase", string(rune('a' + i))}},
			Outcome: o,
			Message: "message " + string(o),
		})
	}
	return r
}

func TestSummarizeCounts(t *testing.T) {
	results := makeResults(OutcomePass, OutcomePass, OutcomeFail, OutcomeWarn, OutcomeSkip)
	s := Summarize(results, false)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Passed)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Warned)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 4, s.Executed)
	assert.Equal(t, s.Total, s.Passed+s.Failed+s.Warned+s.Skipped)
	assert.InDelta(t, 50.0, s.SuccessRate, 0.001)
	assert.Equal(t, []SummaryEntry{{Test: "phase/c", Message: "message FAIL"}}, s.Failures)
	assert.Equal(t, []SummaryEntry{{Test: "phase/d", Message: "message WARN"}}, s.Warnings)
	assert.False(t, s.Success)
}

func TestSummarizeIsRepeatable(t *testing.T) {
	results := makeResults(OutcomePass, OutcomeFail, OutcomeWarn)
	assert.Equal(t, Summarize(results, true), Summarize(results, true))
	assert.Len(t, results.Tests, 3)
}

func TestSummarizeWithNothingExecuted(t *testing.T) {
	s := Summarize(makeResults(OutcomeSkip, OutcomeSkip), false)
	assert.Equal(t, 0, s.Executed)
	assert.Equal(t, 0.0, s.SuccessRate)
	assert.True(t, s.Success)

	s = Summarize(Results{}, true)
	assert.Equal(t, 0, s.Total)
	assert.True(t, s.Success)
	assert.Equal(t, AssessmentExcellent, s.Assessment)
}

func TestStrictModeTreatsWarningsAsFailures(t *testing.T) {
	results := makeResults(OutcomePass, OutcomeWarn)
	assert.True(t, Summarize(results, false).Success)
	assert.False(t, Summarize(results, true).Success)

	results = makeResults(OutcomePass, OutcomeSkip)
	assert.True(t, Summarize(results, true).Success)
}

func TestAssessment(t *testing.T) {
	for _, p := range []struct {
		failed, warned int
		expected       Assessment
	}{
		{0, 0, AssessmentExcellent},
		{0, 1, AssessmentExcellent},
		{0, 2, AssessmentGood},
		{2, 0, AssessmentGood},
		{3, 0, AssessmentNeedsAttention},
		{5, 9, AssessmentNeedsAttention},
		{6, 0, AssessmentSeriousIssues},
	} {
		assert.Equal(t, p.expected, assess(p.failed, p.warned), "failed=%d warned=%d", p.failed, p.warned)
	}
}

func TestSecurityIssuesAreCountedFromFailures(t *testing.T) {
	results := Results{Tests: []TestResult{
		{TestID: TestID{Path: []string{"s", "1"}}, Outcome: OutcomeFail, Message: "CRITICAL: invalid password accepted"},
		{TestID: TestID{Path: []string{"s", "2"}}, Outcome: OutcomeFail, Message: "SECURITY: negative count accepted"},
		{TestID: TestID{Path: []string{"s", "3"}}, Outcome: OutcomeFail, Message: "expected 200, got 500"},
		{TestID: TestID{Path: []string{"s", "4"}}, Outcome: OutcomeWarn, Message: "CRITICAL but only a warning"},
	}}
	s := Summarize(results, false)
	assert.Equal(t, 2, s.SecurityIssues)
	assert.Equal(t, "Address the 2 security issue(s) first", s.Recommendations[0])
	assert.Equal(t, AssessmentNeedsAttention, s.Assessment)
}

func TestRecommendations(t *testing.T) {
	s := Summarize(makeResults(OutcomePass), false)
	assert.Equal(t, []string{"All executed tests passed"}, s.Recommendations)

	s = Summarize(makeResults(OutcomeWarn, OutcomeSkip, OutcomeSkip, OutcomeSkip, OutcomeSkip), false)
	assert.Equal(t, []string{
		"Review the 1 warning(s) for potential improvements",
		"4 tests were skipped; check that earlier steps succeeded",
	}, s.Recommendations)
}
