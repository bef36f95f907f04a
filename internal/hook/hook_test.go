package hook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hairhealth/api-contract-tests/internal/metric"
	"github.com/hairhealth/api-contract-tests/internal/model"
	"github.com/hairhealth/api-contract-tests/internal/store"
	"github.com/hairhealth/api-contract-tests/logging"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	name  string
	err   error
	calls *[]string
}

func (l recordingListener) Name() string { return l.name }

func (l recordingListener) RunFinished(ctx context.Context, run *model.Run) error {
	*l.calls = append(*l.calls, l.name)
	return l.err
}

func sampleRun() *model.Run {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	return &model.Run{
		BaseURL: "http://localhost:8080",
		Start:   start,
		End:     start.Add(time.Second),
		Total:   1,
		Passed:  1,
		Success: true,
		Results: []model.Result{{Phase: "health", Name: "Health Check", Outcome: "PASS"}},
	}
}

func TestManagerCallsEveryListenerInOrder(t *testing.T) {
	var calls []string
	m := NewManager(logging.Discard(),
		recordingListener{name: "a", calls: &calls},
		recordingListener{name: "b", err: errors.New("unavailable"), calls: &calls})
	m.Add(recordingListener{name: "c", calls: &calls})

	failed := m.Notify(context.Background(), sampleRun())

	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"a", "b", "c"}, calls)
}

func TestStoreHookSetsRunID(t *testing.T) {
	s, err := store.New("", logging.Discard())
	require.NoError(t, err)
	defer s.Close()

	run := sampleRun()
	require.NoError(t, StoreHook{Store: s}.RunFinished(context.Background(), run))
	assert.NotZero(t, run.ID)

	loaded, err := s.LoadRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Results, loaded.Results)
}

func TestMetricsHookWritesTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contract.prom")
	h := MetricsHook{Metrics: metric.New(), Textfile: path}

	require.NoError(t, h.RunFinished(context.Background(), sampleRun()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `hairhealth_contract_runs_total{base_url="http://localhost:8080",result="success"} 1`)
}

func TestMetricsHookReportsPushFailure(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(http.StatusServiceUnavailable), func(server *httptest.Server) {
		h := MetricsHook{Metrics: metric.New(), Pushgateway: server.URL}
		assert.Error(t, h.RunFinished(context.Background(), sampleRun()))
	})
}

func elasticHeaders() http.Header {
	return http.Header{
		"Content-Type":      []string{"application/json"},
		"X-Elastic-Product": []string{"Elasticsearch"},
	}
}

func TestElasticHookIndexesRun(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithResponse(http.StatusCreated, elasticHeaders(),
		[]byte(`{"_index":"runs","_id":"1","result":"created"}`)))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		h, err := NewElasticHook(server.URL, "runs")
		require.NoError(t, err)
		require.NoError(t, h.RunFinished(context.Background(), sampleRun()))
	})

	require.Len(t, requestsCh, 1)
	r := <-requestsCh
	assert.Equal(t, http.MethodPost, r.Request.Method)
	assert.Equal(t, "/runs/_doc", r.Request.URL.Path)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Body, &doc))
	assert.Equal(t, "http://localhost:8080", doc["baseUrl"])
	assert.Equal(t, float64(1000), doc["durationMs"])
	assert.Len(t, doc["results"], 1)
}

func TestElasticHookReportsErrorResponse(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(http.StatusBadRequest, elasticHeaders(),
		[]byte(`{"error":{"type":"mapper_parsing_exception"}}`))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		h, err := NewElasticHook(server.URL, "runs")
		require.NoError(t, err)
		err = h.RunFinished(context.Background(), sampleRun())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mapper_parsing_exception")
	})
}
