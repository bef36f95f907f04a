// Package metric exposes the results of contract test runs as Prometheus metrics.
package metric

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/internal/model"
)

// Metrics owns a registry of its own, so that textfile and pushgateway exports only carry
// run metrics and none of the process collectors.
type Metrics struct {
	registry *prometheus.Registry

	testsTotal     *prometheus.CounterVec
	runsTotal      *prometheus.CounterVec
	successRate    *prometheus.GaugeVec
	lastRun        *prometheus.GaugeVec
	runDuration    *prometheus.GaugeVec
	securityIssues *prometheus.GaugeVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		testsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hairhealth_contract_tests_total",
			Help: "The number of test cases run, by outcome",
		}, []string{"base_url", "outcome"}),
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hairhealth_contract_runs_total",
			Help: "The number of suite runs, by result",
		}, []string{"base_url", "result"}),
		successRate: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hairhealth_contract_success_rate",
			Help: "Passed tests as a percentage of executed tests in the last run",
		}, []string{"base_url"}),
		lastRun: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hairhealth_contract_last_run_timestamp_seconds",
			Help: "The time the last run finished",
		}, []string{"base_url"}),
		runDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hairhealth_contract_run_duration_seconds",
			Help: "How long the last run took",
		}, []string{"base_url"}),
		securityIssues: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hairhealth_contract_security_issues",
			Help: "Failed tests in the last run that indicate a security issue",
		}, []string{"base_url"}),
	}
}

// Observe records a finished run.
func (m *Metrics) Observe(run *model.Run) {
	counts := map[framework.Outcome]int{
		framework.OutcomePass: run.Passed,
		framework.OutcomeFail: run.Failed,
		framework.OutcomeWarn: run.Warned,
		framework.OutcomeSkip: run.Skipped,
	}
	for _, o := range framework.AllOutcomes {
		m.testsTotal.WithLabelValues(run.BaseURL, string(o)).Add(float64(counts[o]))
	}
	result := "success"
	if !run.Success {
		result = "failure"
	}
	m.runsTotal.WithLabelValues(run.BaseURL, result).Inc()
	m.successRate.WithLabelValues(run.BaseURL).Set(run.SuccessRate)
	m.lastRun.WithLabelValues(run.BaseURL).Set(float64(run.End.Unix()))
	m.runDuration.WithLabelValues(run.BaseURL).Set(run.End.Sub(run.Start).Seconds())
	m.securityIssues.WithLabelValues(run.BaseURL).Set(float64(run.SecurityIssues))
}

// WriteTextfile writes the current metrics in the format of the node exporter's textfile
// collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

// Push sends the current metrics to a Prometheus pushgateway, replacing the job's metrics.
func (m *Metrics) Push(url, job string) error {
	if err := push.New(url, job).Gatherer(m.registry).Push(); err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", url, err)
	}
	return nil
}

// Handler serves the current metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is the registry that the metrics are registered in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
