package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestPrintfLoggerWritesFormattedMessage(t *testing.T) {
	var buf bytes.Buffer
	l := PrintfLogger{Log: New(&buf, false, true), Level: slog.LevelDebug}
	l.Printf("request %s returned %d", "GET /api/v1/health", 200)
	assert.Contains(t, buf.String(), "request GET /api/v1/health returned 200")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestPrintfLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := PrintfLogger{Log: New(&buf, false, false), Level: slog.LevelDebug}
	l.Printf("hidden")
	assert.Empty(t, buf.String())
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true, false).Info("run finished", "failed", 2)
	assert.Contains(t, buf.String(), `"msg":"run finished"`)
	assert.Contains(t, buf.String(), `"failed":2`)
}

func TestNilPrintfLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() { PrintfLogger{}.Printf("x") })
}
