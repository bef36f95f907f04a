package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/hairhealth/api-contract-tests/framework"
)

// ConsoleTestLogger prints the progress of a run as it happens.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	skipColor = color.New(color.Faint)
)

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestWarning(id framework.TestID, message string) {
	warnColor.Fprintf(c.Out, "  warning: %s\n", message)
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, result framework.TestResult, debugOutput framework.CapturedOutput) {
	failed := false
	switch result.Outcome {
	case framework.OutcomeFail:
		failed = true
		failColor.Fprintf(c.Out, "  FAIL: %s\n", id)
	case framework.OutcomeWarn:
		failed = true
		warnColor.Fprintf(c.Out, "  WARN: %s\n", id)
	default:
		if result.Message != "" {
			passColor.Fprintf(c.Out, "  PASS: %s\n", result.Message)
		} else {
			passColor.Fprintln(c.Out, "  PASS")
		}
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		skipColor.Fprintf(c.Out, "  SKIPPED: %s\n", id)
	} else {
		skipColor.Fprintf(c.Out, "  SKIPPED: %s (%s)\n", id, reason)
	}
}
