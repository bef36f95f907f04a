package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

const excludedByFilter = "excluded by filter parameters"

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of a single test, or of the root of a test run.
//
// It implements Errorf and FailNow so that it can be passed to the assert and require
// packages in place of a *testing.T.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	warnings    []string
	note        string
	payload     []byte
}

// Run executes a test run. The action receives the root context, and is expected to call
// Run or RunCase on it for each test. The root context itself only produces a result if it
// panics outside of any test.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

// RunPhases executes the given phases strictly in order, and every case within each phase
// strictly in order. A failing case never stops the run.
func RunPhases(filter Filter, testLogger TestLogger, phases []Phase) Results {
	return Run(filter, testLogger, func(c *Context) {
		for _, p := range phases {
			pc := c.group(p.Name)
			for _, tc := range p.Cases {
				pc.RunCase(tc)
			}
		}
	})
}

func (c *Context) run(action func(*Context)) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			var addError error
			if _, ok := r.(*Context); ok {
				if !c.skipped {
					c.failed = true
					if len(c.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				}
			} else {
				c.failed = true
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		if len(c.id.Path) == 0 && !c.failed {
			return
		}
		c.env.results.Tests = append(c.env.results.Tests, c.result(time.Since(started)))
	}()

	action(c)
}

func (c *Context) result(elapsed time.Duration) TestResult {
	r := TestResult{
		TestID:   c.id,
		Errors:   c.errors,
		Warnings: c.warnings,
		Payload:  c.payload,
		Duration: elapsed,
	}
	switch {
	case c.failed:
		r.Outcome = OutcomeFail
		msgs := make([]string, 0, len(c.errors))
		for _, e := range c.errors {
			msgs = append(msgs, e.Error())
		}
		r.Message = strings.Join(msgs, "; ")
	case c.skipped:
		r.Outcome = OutcomeSkip
		r.Message = c.skipReason
	case len(c.warnings) != 0:
		r.Outcome = OutcomeWarn
		r.Message = strings.Join(c.warnings, "; ")
	default:
		r.Outcome = OutcomePass
		r.Message = c.note
	}
	return r
}

func (c *Context) group(name string) *Context {
	return &Context{env: c.env, id: c.id.child(name)}
}

func (id TestID) child(name string) TestID {
	path := make([]string, 0, len(id.Path)+1)
	return TestID{Path: append(append(path, id.Path...), name)}
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a single test, recording exactly one result for it.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.child(name)

	c.env.testLogger.TestStarted(id)
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	if c.env.filter != nil && !c.env.filter(id) {
		c1.run(func(c1 *Context) { c1.SkipWithReason(excludedByFilter) })
	} else {
		c1.run(action)
	}
	result := c.env.results.Tests[len(c.env.results.Tests)-1]
	if result.Outcome == OutcomeSkip {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, result, c1.debugLogger.Output())
	}
}

// RunCase runs a test case descriptor. If any of its preconditions is unsatisfied, the case
// is skipped and its action is not called.
func (c *Context) RunCase(tc TestCase) {
	c.Run(tc.Name, func(c1 *Context) {
		if unmet := tc.unmetPreconditions(); len(unmet) != 0 {
			c1.SkipWithReason(strings.Join(unmet, " and "))
		}
		if tc.Action != nil {
			tc.Action(c1)
		}
	})
}

// Results returns a snapshot of the results recorded so far in this run.
func (c *Context) Results() Results {
	return Results{Tests: append([]TestResult(nil), c.env.results.Tests...)}
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := reformatError(fmt.Errorf(format, args...))
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) FailNow() {
	panic(c)
}

// Warnf records a warning. The test continues, and unless it also fails, its outcome is WARN.
func (c *Context) Warnf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, message)
	c.env.testLogger.TestWarning(c.id, message)
}

// Notef sets the message that is reported if the test passes.
func (c *Context) Notef(format string, args ...interface{}) {
	c.note = fmt.Sprintf(format, args...)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Attach keeps a raw response payload with the test result for debugging.
func (c *Context) Attach(payload []byte) {
	c.payload = payload
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// reformatError drops the "Error Trace" and "Test" fields that testify puts into its
// failure messages, since they only point into this package.
func reformatError(err error) error {
	s := err.Error()
	if !strings.Contains(s, "Error Trace:") {
		return err
	}
	var kept []string
	skipping := false
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Error Trace:"), strings.HasPrefix(trimmed, "Test:"):
			skipping = true
			continue
		case strings.HasPrefix(trimmed, "Error:"), strings.HasPrefix(trimmed, "Messages:"):
			skipping = false
		}
		if !skipping && trimmed != "" {
			kept = append(kept, strings.Join(strings.Fields(trimmed), " "))
		}
	}
	return errors.New(strings.Join(kept, "\n"))
}
