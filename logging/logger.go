// Package logging sets up the operational logger used outside of individual tests.
package logging

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/exp/slog"
)

// New returns a logger writing to out, as JSON if jsonFormat is set and as text otherwise.
func New(out io.Writer, jsonFormat, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	if jsonFormat {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// PrintfLogger adapts a slog.Logger to the Printf-style logger interface that the test
// framework uses for debug output.
type PrintfLogger struct {
	Log   *slog.Logger
	Level slog.Level
}

func (l PrintfLogger) Printf(message string, args ...interface{}) {
	if l.Log == nil {
		return
	}
	l.Log.Log(context.Background(), l.Level, fmt.Sprintf(message, args...))
}
