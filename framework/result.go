package framework

import (
	"strings"
	"time"
)

// Outcome is the classification of a single test case invocation.
type Outcome string

const (
	OutcomePass Outcome = "PASS"
	OutcomeFail Outcome = "FAIL"
	OutcomeWarn Outcome = "WARN"
	OutcomeSkip Outcome = "SKIP"
)

// AllOutcomes lists the outcomes in reporting order.
var AllOutcomes = []Outcome{OutcomePass, OutcomeFail, OutcomeWarn, OutcomeSkip}

type Results struct {
	Tests []TestResult
}

type TestResult struct {
	TestID   TestID
	Outcome  Outcome
	Message  string
	Errors   []error
	Warnings []string
	// Payload is the raw body of the last response seen by the test, if any.
	Payload  []byte
	Duration time.Duration
}

// Count returns the number of results with the given outcome.
func (r Results) Count(o Outcome) int {
	n := 0
	for _, t := range r.Tests {
		if t.Outcome == o {
			n++
		}
	}
	return n
}

// WithOutcome returns the results with the given outcome, in run order.
func (r Results) WithOutcome(o Outcome) []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if t.Outcome == o {
			ret = append(ret, t)
		}
	}
	return ret
}

// Executed returns the number of results that were not skipped.
func (r Results) Executed() int {
	return len(r.Tests) - r.Count(OutcomeSkip)
}

func (r Results) OK() bool {
	return r.Count(OutcomeFail) == 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Phase returns the first path element, which is the phase name for suites run by RunPhases.
func (t TestID) Phase() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[0]
}

// Name returns the last path element.
func (t TestID) Name() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}
