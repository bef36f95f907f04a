package framework

import (
	"fmt"
	"strings"
)

// Assessment is a qualitative rating of a run, derived only from its failure and warning
// counts. It is for presentation.
type Assessment string

const (
	AssessmentExcellent      Assessment = "excellent"
	AssessmentGood           Assessment = "good"
	AssessmentNeedsAttention Assessment = "needs attention"
	AssessmentSeriousIssues  Assessment = "serious issues"
)

// Summary is the tabulated outcome of a test run.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warned   int `json:"warned"`
	Skipped  int `json:"skipped"`
	Executed int `json:"executed"`
	// SuccessRate is Passed as a percentage of Executed, or 0 if nothing was executed.
	SuccessRate     float64        `json:"successRate"`
	SecurityIssues  int            `json:"securityIssues"`
	Failures        []SummaryEntry `json:"failures"`
	Warnings        []SummaryEntry `json:"warnings"`
	Strict          bool           `json:"strict"`
	Success         bool           `json:"success"`
	Assessment      Assessment     `json:"assessment"`
	Recommendations []string       `json:"recommendations"`
}

// SummaryEntry is a failed or warned test, with its message exactly as recorded.
type SummaryEntry struct {
	Test    string `json:"test"`
	Message string `json:"message"`
}

// Summarize computes the summary of a run. It does not modify results, so calling it again
// on the same results gives the same summary.
//
// In strict mode a run is only successful if there were no warnings as well as no failures.
func Summarize(results Results, strict bool) Summary {
	s := Summary{
		Total:    len(results.Tests),
		Passed:   results.Count(OutcomePass),
		Failed:   results.Count(OutcomeFail),
		Warned:   results.Count(OutcomeWarn),
		Skipped:  results.Count(OutcomeSkip),
		Executed: results.Executed(),
		Strict:   strict,
		Failures: []SummaryEntry{},
		Warnings: []SummaryEntry{},
	}
	if s.Executed > 0 {
		s.SuccessRate = float64(s.Passed) / float64(s.Executed) * 100
	}
	for _, t := range results.Tests {
		switch t.Outcome {
		case OutcomeFail:
			s.Failures = append(s.Failures, SummaryEntry{Test: t.TestID.String(), Message: t.Message})
			if isSecurityIssue(t.Message) {
				s.SecurityIssues++
			}
		case OutcomeWarn:
			s.Warnings = append(s.Warnings, SummaryEntry{Test: t.TestID.String(), Message: t.Message})
		}
	}
	s.Success = s.Failed == 0 && (!strict || s.Warned == 0)
	s.Assessment = assess(s.Failed, s.Warned)
	s.Recommendations = recommend(s)
	return s
}

func isSecurityIssue(message string) bool {
	return strings.Contains(message, "CRITICAL") || strings.Contains(message, "SECURITY")
}

func assess(failed, warned int) Assessment {
	switch {
	case failed == 0 && warned <= 1:
		return AssessmentExcellent
	case failed <= 2:
		return AssessmentGood
	case failed <= 5:
		return AssessmentNeedsAttention
	default:
		return AssessmentSeriousIssues
	}
}

func recommend(s Summary) []string {
	ret := []string{}
	if s.SecurityIssues > 0 {
		ret = append(ret, fmt.Sprintf("Address the %d security issue(s) first", s.SecurityIssues))
	}
	if s.Failed > 0 {
		ret = append(ret, fmt.Sprintf("Fix the %d failing test(s); check the server logs", s.Failed))
	}
	if s.Warned > 0 {
		ret = append(ret, fmt.Sprintf("Review the %d warning(s) for potential improvements", s.Warned))
	}
	if s.Skipped > 3 {
		ret = append(ret, fmt.Sprintf("%d tests were skipped; check that earlier steps succeeded", s.Skipped))
	}
	if len(ret) == 0 {
		ret = append(ret, "All executed tests passed")
	}
	return ret
}
