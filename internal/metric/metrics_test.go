package metric

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hairhealth/api-contract-tests/internal/model"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:8080"

func sampleRun() *model.Run {
	start := time.Unix(1700000000, 0)
	return &model.Run{
		BaseURL:     baseURL,
		Start:       start,
		End:         start.Add(4 * time.Second),
		Total:       10,
		Passed:      7,
		Failed:      1,
		Warned:      1,
		Skipped:     1,
		SuccessRate: 77.8,
		Success:     false,
	}
}

func TestObserve(t *testing.T) {
	m := New()
	m.Observe(sampleRun())
	m.Observe(sampleRun())

	assert.Equal(t, 14.0, testutil.ToFloat64(m.testsTotal.WithLabelValues(baseURL, "PASS")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.testsTotal.WithLabelValues(baseURL, "FAIL")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.runsTotal.WithLabelValues(baseURL, "failure")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.runsTotal.WithLabelValues(baseURL, "success")))
	assert.Equal(t, 77.8, testutil.ToFloat64(m.successRate.WithLabelValues(baseURL)))
	assert.Equal(t, 1700000004.0, testutil.ToFloat64(m.lastRun.WithLabelValues(baseURL)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.runDuration.WithLabelValues(baseURL)))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Observe(sampleRun())
	path := filepath.Join(t.TempDir(), "contract.prom")

	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `hairhealth_contract_success_rate{base_url="http://localhost:8080"} 77.8`)
	assert.NotContains(t, string(data), "go_goroutines")
}

func TestPush(t *testing.T) {
	m := New()
	m.Observe(sampleRun())
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(http.StatusOK))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		require.NoError(t, m.Push(server.URL, "hairhealth-contract-tests"))
	})

	require.Len(t, requestsCh, 1)
	r := <-requestsCh
	assert.Equal(t, http.MethodPut, r.Request.Method)
	assert.Equal(t, "/metrics/job/hairhealth-contract-tests", r.Request.URL.Path)
}

func TestPushError(t *testing.T) {
	m := New()
	httphelpers.WithServer(httphelpers.HandlerWithStatus(http.StatusInternalServerError), func(server *httptest.Server) {
		assert.Error(t, m.Push(server.URL, "job"))
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.Observe(sampleRun())
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "hairhealth_contract_runs_total"))
}
