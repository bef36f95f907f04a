package framework

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// PrintResults writes a human-readable report of the summary. Colors are only used if
// colored is true.
func PrintResults(out io.Writer, s Summary, colored bool) {
	paint := func(attr color.Attribute) func(string, ...interface{}) string {
		c := color.New(attr)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}
	green, red, yellow, faint, bold := paint(color.FgGreen), paint(color.FgRed), paint(color.FgYellow),
		paint(color.Faint), paint(color.Bold)

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, bold("TEST SUMMARY"))
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Total:    %d\n", s.Total)
	fmt.Fprintf(out, "Passed:   %s\n", green("%d", s.Passed))
	fmt.Fprintf(out, "Failed:   %s\n", red("%d", s.Failed))
	fmt.Fprintf(out, "Warnings: %s\n", yellow("%d", s.Warned))
	fmt.Fprintf(out, "Skipped:  %s\n", faint("%d", s.Skipped))
	if s.Executed > 0 {
		fmt.Fprintf(out, "Success rate: %.1f%% (%d/%d)\n", s.SuccessRate, s.Passed, s.Executed)
	} else {
		fmt.Fprintln(out, "Success rate: n/a (no tests executed)")
	}

	if len(s.Failures) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, red("FAILED TESTS (%d):", len(s.Failures)))
		for _, f := range s.Failures {
			printEntry(out, f)
		}
	}
	if len(s.Warnings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, yellow("WARNINGS (%d):", len(s.Warnings)))
		for _, w := range s.Warnings {
			printEntry(out, w)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Assessment: %s\n", bold("%s", strings.ToUpper(string(s.Assessment))))
	for _, r := range s.Recommendations {
		fmt.Fprintf(out, "  - %s\n", r)
	}

	fmt.Fprintln(out)
	result := green("PASSED")
	if !s.Success {
		result = red("FAILED")
	}
	if s.Strict {
		fmt.Fprintf(out, "Result: %s (strict mode, warnings count as failures)\n", result)
	} else {
		fmt.Fprintf(out, "Result: %s\n", result)
	}
}

func printEntry(out io.Writer, e SummaryEntry) {
	lines := strings.Split(e.Message, "\n")
	fmt.Fprintf(out, "  - %s: %s\n", e.Test, lines[0])
	for _, l := range lines[1:] {
		fmt.Fprintf(out, "      %s\n", l)
	}
}

// WriteJSON writes the summary as a single JSON document.
func WriteJSON(out io.Writer, s Summary) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
