// Package model contains the persisted form of a contract test run.
package model

import (
	"time"

	"github.com/hairhealth/api-contract-tests/framework"
)

// Run is one execution of the suite against one service, as stored in the history and
// published to other systems.
type Run struct {
	ID             int64     `json:"id" db:"id"`
	BaseURL        string    `json:"baseUrl" db:"baseUrl"`
	Start          time.Time `json:"start" db:"-"`
	End            time.Time `json:"end" db:"-"`
	Total          int       `json:"total" db:"total"`
	Passed         int       `json:"passed" db:"passed"`
	Failed         int       `json:"failed" db:"failed"`
	Warned         int       `json:"warned" db:"warned"`
	Skipped        int       `json:"skipped" db:"skipped"`
	SuccessRate    float64   `json:"successRate" db:"successRate"`
	SecurityIssues int       `json:"securityIssues" db:"securityIssues"`
	Strict         bool      `json:"strict" db:"strict"`
	Success        bool      `json:"success" db:"success"`
	Assessment     string    `json:"assessment" db:"assessment"`
	// Results is only loaded when a single run is requested.
	Results []Result `json:"results,omitempty" db:"-"`
}

// Result is the outcome of one test case within a Run.
type Result struct {
	Phase      string `json:"phase" db:"phase"`
	Name       string `json:"name" db:"name"`
	Outcome    string `json:"outcome" db:"outcome"`
	Message    string `json:"message" db:"message"`
	DurationMS int64  `json:"durationMs" db:"durationMs"`
}

// DurationMS returns the wall-clock duration of the run in milliseconds.
func (r Run) DurationMS() int64 {
	return r.End.Sub(r.Start).Milliseconds()
}

// FromSummary builds a Run from the results of a run and their summary.
func FromSummary(
	summary framework.Summary,
	results framework.Results,
	baseURL string,
	start, end time.Time,
) *Run {
	run := &Run{
		BaseURL:        baseURL,
		Start:          start,
		End:            end,
		Total:          summary.Total,
		Passed:         summary.Passed,
		Failed:         summary.Failed,
		Warned:         summary.Warned,
		Skipped:        summary.Skipped,
		SuccessRate:    summary.SuccessRate,
		SecurityIssues: summary.SecurityIssues,
		Strict:         summary.Strict,
		Success:        summary.Success,
		Assessment:     string(summary.Assessment),
		Results:        make([]Result, 0, len(results.Tests)),
	}
	for _, t := range results.Tests {
		run.Results = append(run.Results, Result{
			Phase:      t.TestID.Phase(),
			Name:       t.TestID.Name(),
			Outcome:    string(t.Outcome),
			Message:    t.Message,
			DurationMS: t.Duration.Milliseconds(),
		})
	}
	return run
}
