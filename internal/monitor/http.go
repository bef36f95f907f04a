package monitor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/hairhealth/api-contract-tests/internal/store"
)

type malformedRequestError struct {
	param string
}

func (e malformedRequestError) Error() string {
	return "malformed request param: " + e.param
}

// Handler returns the monitor's HTTP API:
//
//	GET /runs?limit=N   recent runs, newest first, without results
//	GET /runs/:id       one run with its results
//	GET /metrics        Prometheus metrics
func (m *Monitor) Handler() http.Handler {
	router := httprouter.New()
	if m.history != nil {
		router.GET("/runs", m.listRuns)
		router.GET("/runs/:id", m.getRun)
	}
	if m.metrics != nil {
		router.Handler(http.MethodGet, "/metrics", m.metrics)
	}
	return router
}

func (m *Monitor) httpError(w http.ResponseWriter, err error) {
	var malformed malformedRequestError
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &malformed):
		status = http.StatusBadRequest
	default:
		m.log.Error("history request failed", "error", err)
	}
	m.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (m *Monitor) writeJSON(w http.ResponseWriter, status int, value interface{}) {
	body, err := json.Marshal(value)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(body); err != nil {
		m.log.Warn("error writing body", "error", err)
	}
}

func (m *Monitor) listRuns(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			m.httpError(w, malformedRequestError{param: "limit"})
			return
		}
		limit = n
	}
	runs, err := m.history.LoadRuns(r.Context(), limit)
	if err != nil {
		m.httpError(w, err)
		return
	}
	m.writeJSON(w, http.StatusOK, runs)
}

func (m *Monitor) getRun(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id, err := strconv.ParseInt(p.ByName("id"), 10, 64)
	if err != nil {
		m.httpError(w, malformedRequestError{param: "id"})
		return
	}
	run, err := m.history.LoadRun(r.Context(), id)
	if err != nil {
		m.httpError(w, err)
		return
	}
	m.writeJSON(w, http.StatusOK, run)
}
