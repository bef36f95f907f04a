package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/exp/slog"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/hairtests"
	"github.com/hairhealth/api-contract-tests/internal/config"
	"github.com/hairhealth/api-contract-tests/internal/hook"
	"github.com/hairhealth/api-contract-tests/internal/metric"
	"github.com/hairhealth/api-contract-tests/internal/model"
	"github.com/hairhealth/api-contract-tests/internal/monitor"
	"github.com/hairhealth/api-contract-tests/internal/store"
	"github.com/hairhealth/api-contract-tests/logging"
)

func main() {
	var params commandParams
	if err := params.Read(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		os.Exit(1)
	}
	os.Exit(run(params))
}

// app is everything a single suite run needs, shared between one-shot and scheduled runs.
type app struct {
	cfg     config.Config
	filters framework.RegexFilters
	log     *slog.Logger
	console io.Writer
	report  io.Writer
	harness *framework.TestHarness
	hooks   *hook.Manager
	history *store.Store
	metrics *metric.Metrics
}

func run(params commandParams) int {
	cfg := params.config
	log := logging.New(os.Stderr, cfg.LogJSON, cfg.Debug || cfg.DebugAll)

	// With JSON output, stdout carries only the report.
	a := &app{cfg: cfg, filters: params.filters, log: log, console: os.Stdout, report: os.Stdout}
	if cfg.Output == config.OutputJSON {
		a.console = os.Stderr
	}

	if params.configFile != "" {
		fmt.Fprintf(a.console, "Settings from %s, equivalent to:\n  %s\n\n", params.configFile, params.Reproduction())
	}

	if err := a.setUpHooks(); err != nil {
		log.Error("setting up run publishing", "error", err)
		return 1
	}
	defer a.close()

	var debugLogger framework.Logger
	if cfg.DebugAll {
		debugLogger = logging.PrintfLogger{Log: log, Level: slog.LevelDebug}
	}
	harness, err := framework.NewTestHarness(cfg.URL, cfg.Timeout, cfg.Wait, debugLogger, a.console)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test service error: %s\n", err)
		return 1
	}
	a.harness = harness

	fmt.Fprintln(a.console)
	framework.PrintFilterDescription(a.console, a.filters)

	if cfg.Monitor() {
		return a.monitor()
	}

	_, summary := a.runSuite(context.Background())
	if !summary.Success {
		return 1
	}
	return 0
}

func (a *app) setUpHooks() error {
	a.hooks = hook.NewManager(a.log)
	if a.cfg.DB != "" || a.cfg.Listen != "" {
		// Without a file, scheduled runs are still kept in memory for the history API.
		s, err := store.New(a.cfg.DB, a.log)
		if err != nil {
			return err
		}
		a.history = s
		a.hooks.Add(hook.StoreHook{Store: s})
	}
	if a.cfg.MetricsFile != "" || a.cfg.Pushgateway != "" || a.cfg.Listen != "" {
		a.metrics = metric.New()
		a.hooks.Add(hook.MetricsHook{
			Metrics:     a.metrics,
			Textfile:    a.cfg.MetricsFile,
			Pushgateway: a.cfg.Pushgateway,
		})
	}
	if a.cfg.Elastic.URL != "" {
		h, err := hook.NewElasticHook(a.cfg.Elastic.URL, a.cfg.Elastic.Index)
		if err != nil {
			return err
		}
		a.hooks.Add(h)
	}
	return nil
}

func (a *app) close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.log.Warn("closing run history", "error", err)
		}
	}
}

// runSuite performs one complete run with a new session, reports it, and notifies the hooks.
func (a *app) runSuite(ctx context.Context) (*model.Run, framework.Summary) {
	fmt.Fprintln(a.console, "Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  a.console,
		DebugOutputOnFailure: a.cfg.Debug || a.cfg.DebugAll,
		DebugOutputOnSuccess: a.cfg.DebugAll,
	}
	options := hairtests.Options{DeleteAccount: a.cfg.DeleteAccount}

	start := time.Now()
	results := hairtests.RunTestSuite(a.harness, a.filters.AsFilter, testLogger, options)
	end := time.Now()

	summary := framework.Summarize(results, a.cfg.Strict)
	fmt.Fprintln(a.console)
	if a.cfg.Output == config.OutputJSON {
		if err := framework.WriteJSON(a.report, summary); err != nil {
			a.log.Error("writing report", "error", err)
		}
	} else {
		framework.PrintResults(a.report, summary, !color.NoColor)
	}

	run := model.FromSummary(summary, results, a.harness.BaseURL(), start, end)
	a.hooks.Notify(ctx, run)
	return run, summary
}

func (a *app) monitor() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []monitor.Option
	if a.cfg.Listen != "" {
		opts = append(opts, monitor.WithHTTP(a.cfg.Listen, a.history, a.metrics.Handler()))
	}
	m, err := monitor.New(a.cfg.Schedule, func(ctx context.Context) (*model.Run, error) {
		run, _ := a.runSuite(ctx)
		return run, nil
	}, a.log, opts...)
	if err != nil {
		a.log.Error("starting monitor", "error", err)
		return 1
	}
	if err := m.Start(ctx); err != nil {
		a.log.Error("monitor failed", "error", err)
		return 1
	}
	return 0
}
