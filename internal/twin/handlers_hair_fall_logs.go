package twin

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hairhealth/api-contract-tests/servicedef"
)

var hairFallCategories = map[string]bool{
	servicedef.CategoryShower: true,
	servicedef.CategoryPillow: true,
	servicedef.CategoryComb:   true,
	servicedef.CategoryBrush:  true,
	servicedef.CategoryOther:  true,
}

const trendWindow = 3

type hairFallLogRequest struct {
	Date        *string `json:"date"`
	Count       *int    `json:"count"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}

func validDate(s string) bool {
	_, err := time.Parse(servicedef.DateFormat, s)
	return err == nil
}

// validate checks a create request if create is true, or a partial update otherwise. It
// returns an error message, or "" if the request is valid.
func (req hairFallLogRequest) validate(create bool) string {
	if create && (req.Date == nil || req.Count == nil || req.Category == nil) {
		return "date, count and category are required"
	}
	if req.Date != nil && !validDate(*req.Date) {
		return "date must be in YYYY-MM-DD format"
	}
	if req.Count != nil && *req.Count < 0 {
		return "count must not be negative"
	}
	if req.Category != nil && !hairFallCategories[*req.Category] {
		return "unknown category"
	}
	return ""
}

func (s *Server) ownHairFallLog(w http.ResponseWriter, r *http.Request) (hairFallLog, bool) {
	l, ok := s.hairFallLogs.get(chi.URLParam(r, "id"))
	if !ok || l.UserID != currentUserID(r) {
		writeError(w, http.StatusNotFound, "not_found", "hair fall log not found")
		return hairFallLog{}, false
	}
	return l, true
}

func (s *Server) userHairFallLogs(userID string) []hairFallLog {
	return s.hairFallLogs.filter(func(l hairFallLog) bool { return l.UserID == userID })
}

func (s *Server) listHairFallLogs(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := paging(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, page(s.userHairFallLogs(currentUserID(r)), offset, limit))
}

func (s *Server) createHairFallLog(w http.ResponseWriter, r *http.Request) {
	var req hairFallLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := req.validate(true); msg != "" {
		writeError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}
	now := s.now().UTC()
	l := hairFallLog{
		ID:        uuid.NewString(),
		UserID:    currentUserID(r),
		Date:      *req.Date,
		Count:     *req.Count,
		Category:  *req.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	s.hairFallLogs.set(l.ID, l)
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) getHairFallLog(w http.ResponseWriter, r *http.Request) {
	if l, ok := s.ownHairFallLog(w, r); ok {
		writeJSON(w, http.StatusOK, l)
	}
}

func (s *Server) updateHairFallLog(w http.ResponseWriter, r *http.Request) {
	l, ok := s.ownHairFallLog(w, r)
	if !ok {
		return
	}
	var req hairFallLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := req.validate(false); msg != "" {
		writeError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}
	l, _ = s.hairFallLogs.update(l.ID, func(l *hairFallLog) {
		if req.Date != nil {
			l.Date = *req.Date
		}
		if req.Count != nil {
			l.Count = *req.Count
		}
		if req.Category != nil {
			l.Category = *req.Category
		}
		if req.Description != nil {
			l.Description = *req.Description
		}
		l.UpdatedAt = s.now().UTC()
	})
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) deleteHairFallLog(w http.ResponseWriter, r *http.Request) {
	l, ok := s.ownHairFallLog(w, r)
	if !ok {
		return
	}
	s.hairFallLogs.delete(l.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "hair fall log deleted"})
}

func (s *Server) hairFallStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, computeHairFallStats(s.userHairFallLogs(currentUserID(r))))
}

// computeHairFallStats compares the average of the most recent logs, by date, with the
// average of the logs before them to derive a trend.
func computeHairFallStats(logs []hairFallLog) hairFallStats {
	stats := hairFallStats{TotalLogs: len(logs), RecentTrend: "STABLE"}
	if len(logs) == 0 {
		return stats
	}
	sorted := append([]hairFallLog(nil), logs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	for _, l := range sorted {
		stats.TotalCount += l.Count
	}
	stats.AverageCount = float64(stats.TotalCount) / float64(len(sorted))
	stats.LastLogDate = &sorted[0].Date

	if len(sorted) > trendWindow {
		recent := averageCount(sorted[:trendWindow])
		earlier := averageCount(sorted[trendWindow:])
		switch {
		case recent > earlier*1.1:
			stats.RecentTrend = "INCREASING"
		case recent < earlier*0.9:
			stats.RecentTrend = "DECREASING"
		}
	}
	return stats
}

func averageCount(logs []hairFallLog) float64 {
	total := 0
	for _, l := range logs {
		total += l.Count
	}
	return float64(total) / float64(len(logs))
}

func (s *Server) hairFallLogsByDateRange(w http.ResponseWriter, r *http.Request) {
	start, end := r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate")
	if !validDate(start) || !validDate(end) {
		writeError(w, http.StatusBadRequest, "validation_error", "startDate and endDate must be in YYYY-MM-DD format")
		return
	}
	userID := currentUserID(r)
	writeJSON(w, http.StatusOK, s.hairFallLogs.filter(func(l hairFallLog) bool {
		return l.UserID == userID && l.Date >= start && l.Date <= end
	}))
}
