package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hairhealth/api-contract-tests/internal/model"
	"github.com/hairhealth/api-contract-tests/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	s, err := New("", logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(start time.Time, failed int) *model.Run {
	return &model.Run{
		BaseURL:     "http://localhost:8080",
		Start:       start,
		End:         start.Add(1500 * time.Millisecond),
		Total:       3,
		Passed:      3 - failed,
		Failed:      failed,
		SuccessRate: float64(3-failed) / 3 * 100,
		Success:     failed == 0,
		Assessment:  "excellent",
		Results: []model.Result{
			{Phase: "health", Name: "Health Check", Outcome: "PASS", Message: "service is healthy", DurationMS: 3},
			{Phase: "health", Name: "Public Endpoint", Outcome: "PASS", Message: "public endpoint accessible", DurationMS: 2},
			{Phase: "authentication", Name: "User Login", Outcome: "PASS", Message: "login successful", DurationMS: 9},
		},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 10, 12, 0, 0, 123000000, time.UTC)

	id, err := s.SaveRun(ctx, sampleRun(start, 0))
	require.NoError(t, err)

	run, err := s.LoadRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "http://localhost:8080", run.BaseURL)
	assert.True(t, run.Start.Equal(start))
	assert.Equal(t, int64(1500), run.DurationMS())
	assert.True(t, run.Success)
	assert.Equal(t, 100.0, run.SuccessRate)
	assert.Equal(t, sampleRun(start, 0).Results, run.Results)
}

func TestLoadRunNotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.LoadRun(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRunsNewestFirstWithoutResults(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := s.SaveRun(ctx, sampleRun(start.Add(time.Duration(i)*time.Hour), i))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := s.LoadRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Equal(t, 2, runs[0].Failed)
	assert.Empty(t, runs[0].Results)

	all, err := s.LoadRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReopenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := New(path, logging.Discard())
	require.NoError(t, err)
	id, err := s.SaveRun(ctx, sampleRun(time.Now(), 1))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(path, logging.Discard())
	require.NoError(t, err)
	defer s.Close()
	run, err := s.LoadRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, run.Failed)
	assert.Len(t, run.Results, 3)
}

func TestSeparateInMemoryStoresAreIndependent(t *testing.T) {
	a, b := newStore(t), newStore(t)
	_, err := a.SaveRun(context.Background(), sampleRun(time.Now(), 0))
	require.NoError(t, err)

	runs, err := b.LoadRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
