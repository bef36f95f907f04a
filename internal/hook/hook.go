// Package hook notifies other systems when a contract test run has finished.
package hook

import (
	"context"

	"golang.org/x/exp/slog"

	"github.com/hairhealth/api-contract-tests/internal/model"
)

// RunFinishedListener is called once for every finished run.
type RunFinishedListener interface {
	Name() string
	RunFinished(ctx context.Context, run *model.Run) error
}

// Manager calls its listeners in the order they were added. A failing listener is logged and
// does not stop the others.
type Manager struct {
	listeners []RunFinishedListener
	log       *slog.Logger
}

func NewManager(log *slog.Logger, listeners ...RunFinishedListener) *Manager {
	return &Manager{listeners: listeners, log: log}
}

func (m *Manager) Add(l RunFinishedListener) {
	m.listeners = append(m.listeners, l)
}

// Notify calls every listener, and returns the number of listeners that failed.
func (m *Manager) Notify(ctx context.Context, run *model.Run) int {
	failed := 0
	for _, l := range m.listeners {
		if err := l.RunFinished(ctx, run); err != nil {
			m.log.Error("run finished hook failed", "hook", l.Name(), "error", err)
			failed++
			continue
		}
		m.log.Debug("run finished hook done", "hook", l.Name())
	}
	return failed
}
