package framework

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const readinessPollInterval = time.Millisecond * 100

// TestHarness holds what every test in a run shares: the client for the service under test
// and the logger for harness-level debug output.
type TestHarness struct {
	client *ServiceClient
	logger Logger
}

// NewTestHarness creates a TestHarness for the service at baseURL.
//
// If readinessTimeout is positive, it first polls the base URL until the service returns any
// HTTP response, and fails if that does not happen in time. Otherwise it does not contact the
// service; an unreachable service then shows up as "no response" failures in the tests.
func NewTestHarness(
	baseURL string,
	requestTimeout time.Duration,
	readinessTimeout time.Duration,
	debugLogger Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}

	h := &TestHarness{
		client: NewServiceClient(baseURL, requestTimeout, debugLogger),
		logger: debugLogger,
	}

	if readinessTimeout > 0 {
		if err := awaitService(baseURL, readinessTimeout, startupOutput); err != nil {
			return nil, err
		}
	}

	return h, nil
}

func (h *TestHarness) Client() *ServiceClient {
	return h.client
}

func (h *TestHarness) BaseURL() string {
	return h.client.BaseURL()
}

func (h *TestHarness) Logger() Logger {
	return h.logger
}

func awaitService(url string, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to service at %s", url)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ticker := time.NewTicker(readinessPollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		fmt.Fprintf(output, ".")
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			resp.Body.Close()
			fmt.Fprintln(output)
			return nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			fmt.Fprintln(output)
			return fmt.Errorf("timed out waiting for service, result of last query was: %w", lastErr)
		case <-ticker.C:
		}
	}
}
