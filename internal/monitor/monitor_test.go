package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hairhealth/api-contract-tests/internal/metric"
	"github.com/hairhealth/api-contract-tests/internal/model"
	"github.com/hairhealth/api-contract-tests/internal/store"
	"github.com/hairhealth/api-contract-tests/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finishedRun(passed int) *model.Run {
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	return &model.Run{
		BaseURL: "http://localhost:8080",
		Start:   start,
		End:     start.Add(2 * time.Second),
		Total:   passed,
		Passed:  passed,
		Success: true,
		Results: []model.Result{{Phase: "health", Name: "Health Check", Outcome: "PASS", Message: "ok"}},
	}
}

func TestNewRejectsInvalidSchedule(t *testing.T) {
	_, err := New("every now and then", nil, logging.Discard())
	assert.Error(t, err)

	_, err = New("@every 5m", nil, logging.Discard())
	assert.NoError(t, err)
}

func TestTickSkipsWhileRunIsActive(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	m, err := New("*/5 * * * *", func(ctx context.Context) (*model.Run, error) {
		close(started)
		<-release
		return finishedRun(1), nil
	}, logging.Discard())
	require.NoError(t, err)

	done := make(chan bool)
	go func() { done <- m.Tick(context.Background()) }()
	<-started

	assert.False(t, m.Tick(context.Background()))
	assert.Equal(t, 1, m.Skipped())

	close(release)
	assert.True(t, <-done)
	assert.Equal(t, 1, m.Completed())
}

func TestTickCountsFailedRuns(t *testing.T) {
	calls := 0
	m, err := New("@hourly", func(ctx context.Context) (*model.Run, error) {
		calls++
		return nil, errors.New("service unreachable")
	}, logging.Discard())
	require.NoError(t, err)

	assert.True(t, m.Tick(context.Background()))
	assert.True(t, m.Tick(context.Background()))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, m.Completed())
}

func TestTickDoesNothingAfterCancel(t *testing.T) {
	m, err := New("@hourly", func(ctx context.Context) (*model.Run, error) {
		t.Fatal("run should not be called")
		return nil, nil
	}, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, m.Tick(ctx))
}

func TestStartReturnsWhenCancelled(t *testing.T) {
	m, err := New("@every 1h", func(ctx context.Context) (*model.Run, error) {
		return finishedRun(1), nil
	}, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error)
	go func() { result <- m.Start(ctx) }()
	cancel()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("monitor did not stop")
	}
}

func historyServer(t *testing.T) (*httptest.Server, *store.Store) {
	s, err := store.New("", logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	metrics := metric.New()
	metrics.Observe(finishedRun(3))

	m, err := New("@hourly", nil, logging.Discard(), WithHTTP(":0", s, metrics.Handler()))
	require.NoError(t, err)
	server := httptest.NewServer(m.Handler())
	t.Cleanup(server.Close)
	return server, s
}

func get(t *testing.T, url string) (int, []byte) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestListRuns(t *testing.T) {
	server, s := historyServer(t)
	for i := 1; i <= 3; i++ {
		_, err := s.SaveRun(context.Background(), finishedRun(i))
		require.NoError(t, err)
	}

	status, body := get(t, server.URL+"/runs?limit=2")
	require.Equal(t, http.StatusOK, status)

	var runs []model.Run
	require.NoError(t, json.Unmarshal(body, &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, 3, runs[0].Passed)
	assert.Equal(t, 2, runs[1].Passed)
	assert.Empty(t, runs[0].Results)
}

func TestListRunsRejectsBadLimit(t *testing.T) {
	server, _ := historyServer(t)

	status, body := get(t, server.URL+"/runs?limit=many")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"malformed request param: limit"}`, string(body))
}

func TestGetRun(t *testing.T) {
	server, s := historyServer(t)
	id, err := s.SaveRun(context.Background(), finishedRun(1))
	require.NoError(t, err)

	status, body := get(t, server.URL+"/runs/"+jsonID(id))
	require.Equal(t, http.StatusOK, status)

	var run model.Run
	require.NoError(t, json.Unmarshal(body, &run))
	assert.Equal(t, id, run.ID)
	require.Len(t, run.Results, 1)
	assert.Equal(t, "Health Check", run.Results[0].Name)
}

func TestGetRunErrors(t *testing.T) {
	server, _ := historyServer(t)

	status, _ := get(t, server.URL+"/runs/99")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = get(t, server.URL+"/runs/latest")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMetricsRoute(t *testing.T) {
	server, _ := historyServer(t)

	status, body := get(t, server.URL+"/metrics")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "hairhealth_contract_tests_total")
}

func jsonID(id int64) string {
	data, _ := json.Marshal(id)
	return string(data)
}
