// Package monitor runs the contract test suite on a schedule and serves the run history.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/exp/slog"

	"github.com/hairhealth/api-contract-tests/internal/model"
)

const shutdownTimeout = 5 * time.Second

// RunFunc performs one complete run of the suite. Each call is expected to use a new session.
type RunFunc func(ctx context.Context) (*model.Run, error)

// History is the read side of the run store.
type History interface {
	LoadRun(ctx context.Context, id int64) (*model.Run, error)
	LoadRuns(ctx context.Context, limit int) ([]*model.Run, error)
}

type Monitor struct {
	schedule string
	run      RunFunc
	log      *slog.Logger

	listen  string
	history History
	metrics http.Handler

	running   atomic.Bool
	completed atomic.Int32
	skipped   atomic.Int32
}

type Option func(*Monitor)

// WithHTTP serves the history API on addr. history and metrics may each be nil, in which case
// the corresponding routes are not registered.
func WithHTTP(addr string, history History, metrics http.Handler) Option {
	return func(m *Monitor) {
		m.listen = addr
		m.history = history
		m.metrics = metrics
	}
}

// New creates a Monitor that calls run on the given cron schedule. The schedule uses the
// standard five fields, or a descriptor such as "@every 10m".
func New(schedule string, run RunFunc, log *slog.Logger, opts ...Option) (*Monitor, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	m := &Monitor{schedule: schedule, run: run, log: log}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Start schedules runs and, if configured, starts the HTTP server. It blocks until ctx is
// cancelled, then waits for an active run to finish.
func (m *Monitor) Start(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(m.schedule, func() {
		m.Tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling runs: %w", err)
	}

	var server *http.Server
	serverErr := make(chan error, 1)
	if m.listen != "" {
		server = &http.Server{Addr: m.listen, Handler: m.Handler(), ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
		m.log.Info("serving run history", "addr", m.listen)
	}

	c.Start()
	m.log.Info("monitor started", "schedule", m.schedule)

	select {
	case <-ctx.Done():
	case err = <-serverErr:
		err = fmt.Errorf("serving run history: %w", err)
	}

	m.log.Info("monitor stopping")
	<-c.Stop().Done()
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			m.log.Warn("http server shutdown", "error", shutdownErr)
		}
	}
	return err
}

// Tick performs one run unless another run is still active. It reports whether a run was
// started.
func (m *Monitor) Tick(ctx context.Context) bool {
	if !m.running.CompareAndSwap(false, true) {
		m.skipped.Add(1)
		m.log.Warn("previous run still active, skipping scheduled run")
		return false
	}
	defer m.running.Store(false)

	if ctx.Err() != nil {
		return false
	}

	run, err := m.run(ctx)
	m.completed.Add(1)
	if err != nil {
		m.log.Error("scheduled run failed", "error", err)
		return true
	}
	m.log.Info("scheduled run finished",
		"id", run.ID,
		"success", run.Success,
		"passed", run.Passed,
		"failed", run.Failed,
		"warned", run.Warned,
		"skipped", run.Skipped,
		"duration", run.End.Sub(run.Start))
	return true
}

// Completed returns the number of runs performed so far.
func (m *Monitor) Completed() int {
	return int(m.completed.Load())
}

// Skipped returns the number of scheduled runs skipped because a run was still active.
func (m *Monitor) Skipped() int {
	return int(m.skipped.Load())
}
