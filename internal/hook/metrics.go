package hook

import (
	"context"
	"errors"

	"github.com/hairhealth/api-contract-tests/internal/metric"
	"github.com/hairhealth/api-contract-tests/internal/model"
)

const DefaultPushJob = "hairhealth-contract-tests"

// MetricsHook records each run in the metrics, then exports them to a textfile and/or a
// pushgateway if those are configured.
type MetricsHook struct {
	Metrics     *metric.Metrics
	Textfile    string
	Pushgateway string
	// Job is the pushgateway job name; it defaults to DefaultPushJob.
	Job string
}

func (h MetricsHook) Name() string {
	return "metrics"
}

func (h MetricsHook) RunFinished(ctx context.Context, run *model.Run) error {
	h.Metrics.Observe(run)

	var errs []error
	if h.Textfile != "" {
		errs = append(errs, h.Metrics.WriteTextfile(h.Textfile))
	}
	if h.Pushgateway != "" {
		job := h.Job
		if job == "" {
			job = DefaultPushJob
		}
		errs = append(errs, h.Metrics.Push(h.Pushgateway, job))
	}
	return errors.Join(errs...)
}
