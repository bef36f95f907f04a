package twin

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hairhealth/api-contract-tests/servicedef"
)

var interventionTypes = map[string]bool{
	servicedef.InterventionTopical:    true,
	servicedef.InterventionOral:       true,
	servicedef.InterventionSupplement: true,
	servicedef.InterventionProcedure:  true,
}

type interventionRequest struct {
	Type            *string `json:"type"`
	ProductName     *string `json:"productName"`
	DosageAmount    *string `json:"dosageAmount"`
	Frequency       *string `json:"frequency"`
	ApplicationTime *string `json:"applicationTime"`
	StartDate       *string `json:"startDate"`
	EndDate         *string `json:"endDate"`
	Notes           *string `json:"notes"`
}

func (req interventionRequest) validate(create bool) string {
	if create && (req.Type == nil || req.ProductName == nil || req.Frequency == nil || req.StartDate == nil) {
		return "type, productName, frequency and startDate are required"
	}
	if req.Type != nil && !interventionTypes[*req.Type] {
		return "unknown intervention type"
	}
	if req.ProductName != nil && strings.TrimSpace(*req.ProductName) == "" {
		return "productName must not be empty"
	}
	if req.Frequency != nil && strings.TrimSpace(*req.Frequency) == "" {
		return "frequency must not be empty"
	}
	if req.StartDate != nil && !validDate(*req.StartDate) {
		return "startDate must be in YYYY-MM-DD format"
	}
	if req.EndDate != nil && !validDate(*req.EndDate) {
		return "endDate must be in YYYY-MM-DD format"
	}
	return ""
}

func (req interventionRequest) apply(i *intervention) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&i.Type, req.Type)
	set(&i.ProductName, req.ProductName)
	set(&i.DosageAmount, req.DosageAmount)
	set(&i.Frequency, req.Frequency)
	set(&i.ApplicationTime, req.ApplicationTime)
	set(&i.StartDate, req.StartDate)
	set(&i.Notes, req.Notes)
	if req.EndDate != nil {
		i.EndDate = req.EndDate
	}
}

type applicationRequest struct {
	Timestamp string `json:"timestamp"`
	Notes     string `json:"notes"`
}

func (s *Server) ownIntervention(w http.ResponseWriter, r *http.Request) (intervention, bool) {
	i, ok := s.interventions.get(chi.URLParam(r, "id"))
	if !ok || i.UserID != currentUserID(r) {
		writeError(w, http.StatusNotFound, "not_found", "intervention not found")
		return intervention{}, false
	}
	return i, true
}

func (s *Server) listInterventions(w http.ResponseWriter, r *http.Request) {
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("includeInactive"))
	userID := currentUserID(r)
	writeJSON(w, http.StatusOK, s.interventions.filter(func(i intervention) bool {
		return i.UserID == userID && (includeInactive || i.IsActive)
	}))
}

func (s *Server) listActiveInterventions(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	writeJSON(w, http.StatusOK, s.interventions.filter(func(i intervention) bool {
		return i.UserID == userID && i.IsActive
	}))
}

func (s *Server) createIntervention(w http.ResponseWriter, r *http.Request) {
	var req interventionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := req.validate(true); msg != "" {
		writeError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}
	writeJSON(w, http.StatusCreated, s.addIntervention(currentUserID(r), req))
}

func (s *Server) addIntervention(userID string, req interventionRequest) intervention {
	now := s.now().UTC()
	i := intervention{
		ID:        uuid.NewString(),
		UserID:    userID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(&i)
	s.interventions.set(i.ID, i)
	return i
}

func (s *Server) getIntervention(w http.ResponseWriter, r *http.Request) {
	if i, ok := s.ownIntervention(w, r); ok {
		writeJSON(w, http.StatusOK, i)
	}
}

func (s *Server) updateIntervention(w http.ResponseWriter, r *http.Request) {
	i, ok := s.ownIntervention(w, r)
	if !ok {
		return
	}
	var req interventionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := req.validate(false); msg != "" {
		writeError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}
	i, _ = s.interventions.update(i.ID, func(i *intervention) {
		req.apply(i)
		i.UpdatedAt = s.now().UTC()
	})
	writeJSON(w, http.StatusOK, i)
}

func (s *Server) deactivateIntervention(w http.ResponseWriter, r *http.Request) {
	i, ok := s.ownIntervention(w, r)
	if !ok {
		return
	}
	now := s.now().UTC()
	i, _ = s.interventions.update(i.ID, func(i *intervention) {
		end := now.Format(servicedef.DateFormat)
		i.IsActive = false
		i.EndDate = &end
		i.UpdatedAt = now
	})
	writeJSON(w, http.StatusOK, i)
}

// logApplication records one application of an intervention. The timestamp defaults to the
// current time.
func (s *Server) logApplication(w http.ResponseWriter, r *http.Request) {
	i, ok := s.ownIntervention(w, r)
	if !ok {
		return
	}
	var req applicationRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}
	now := s.now().UTC()
	timestamp := now
	if req.Timestamp != "" {
		t, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", "timestamp must be in RFC 3339 format")
			return
		}
		timestamp = t.UTC()
	}
	a := application{
		ID:             uuid.NewString(),
		InterventionID: i.ID,
		UserID:         i.UserID,
		Timestamp:      timestamp,
		Notes:          req.Notes,
		CreatedAt:      now,
	}
	s.applications.set(a.ID, a)
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) interventionApplications(interventionID string) []application {
	return s.applications.filter(func(a application) bool { return a.InterventionID == interventionID })
}

func (s *Server) listApplications(w http.ResponseWriter, r *http.Request) {
	i, ok := s.ownIntervention(w, r)
	if !ok {
		return
	}
	offset, limit, ok := paging(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, page(s.interventionApplications(i.ID), offset, limit))
}

func (s *Server) adherenceStats(w http.ResponseWriter, r *http.Request) {
	i, ok := s.ownIntervention(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, computeAdherence(i, len(s.interventionApplications(i.ID)), s.now()))
}

// computeAdherence counts the start date itself as the first day of the intervention.
func computeAdherence(i intervention, actual int, now time.Time) adherenceStats {
	stats := adherenceStats{InterventionID: i.ID, ActualApplications: actual}
	start, err := time.Parse(servicedef.DateFormat, i.StartDate)
	if err == nil {
		today := now.UTC().Truncate(24 * time.Hour)
		if days := int(today.Sub(start).Hours() / 24); days > 0 {
			stats.DaysSinceStart = days
		}
	}
	stats.ExpectedApplications = (stats.DaysSinceStart + 1) * applicationsPerDay(i.Frequency)
	if stats.ExpectedApplications > 0 {
		stats.AdherenceRate = math.Min(1, float64(actual)/float64(stats.ExpectedApplications))
	}
	stats.AdherencePercentage = math.Round(stats.AdherenceRate*1000) / 10
	switch {
	case stats.AdherenceRate >= 0.8:
		stats.AdherenceLevel = "HIGH"
	case stats.AdherenceRate >= 0.5:
		stats.AdherenceLevel = "MEDIUM"
	default:
		stats.AdherenceLevel = "LOW"
	}
	return stats
}

func applicationsPerDay(frequency string) int {
	f := strings.ToLower(frequency)
	switch {
	case strings.Contains(f, "three times") || strings.Contains(f, "thrice"):
		return 3
	case strings.Contains(f, "twice"):
		return 2
	default:
		return 1
	}
}
