package twin

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	sharingStatusActive  = "ACTIVE"
	sharingStatusRevoked = "REVOKED"

	accessStatusPending  = "PENDING"
	accessStatusApproved = "APPROVED"
	accessStatusDenied   = "DENIED"

	defaultAccessDurationHours = 24
	maxAccessDurationHours     = 24 * 30
	sharingBaseURL             = "https://share.twin.invalid/sessions"
)

type sharingSessionRequest struct {
	ProfessionalEmail   string `json:"professionalEmail"`
	AccessDurationHours int    `json:"accessDurationHours"`
	Notes               string `json:"notes"`
}

type revokeRequest struct {
	Reason string `json:"reason"`
}

type accessRequest struct {
	ProfessionalID string `json:"professionalId"`
	Reason         string `json:"reason"`
}

func (s *Server) listSharingSessions(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	writeJSON(w, http.StatusOK, s.sharing.filter(func(ss sharingSession) bool { return ss.UserID == userID }))
}

func (s *Server) createSharingSession(w http.ResponseWriter, r *http.Request) {
	var req sharingSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validEmail(strings.TrimSpace(req.ProfessionalEmail)) {
		writeError(w, http.StatusBadRequest, "validation_error", "a valid professionalEmail is required")
		return
	}
	if req.AccessDurationHours == 0 {
		req.AccessDurationHours = defaultAccessDurationHours
	}
	if req.AccessDurationHours < 0 || req.AccessDurationHours > maxAccessDurationHours {
		writeError(w, http.StatusBadRequest, "validation_error",
			fmt.Sprintf("accessDurationHours must be between 1 and %d", maxAccessDurationHours))
		return
	}
	now := s.now().UTC()
	ss := sharingSession{
		SessionID:         uuid.NewString(),
		UserID:            currentUserID(r),
		ProfessionalID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalizeEmail(req.ProfessionalEmail))).String(),
		ProfessionalEmail: strings.TrimSpace(req.ProfessionalEmail),
		Status:            sharingStatusActive,
		Notes:             req.Notes,
		ExpiresAt:         now.Add(time.Duration(req.AccessDurationHours) * time.Hour),
		CreatedAt:         now,
	}
	ss.AccessURL = fmt.Sprintf("%s/%s", sharingBaseURL, ss.SessionID)
	s.sharing.set(ss.SessionID, ss)
	writeJSON(w, http.StatusCreated, ss)
}

func (s *Server) ownSharingSession(w http.ResponseWriter, r *http.Request) (sharingSession, bool) {
	ss, ok := s.sharing.get(chi.URLParam(r, "id"))
	if !ok || ss.UserID != currentUserID(r) {
		writeError(w, http.StatusNotFound, "not_found", "sharing session not found")
		return sharingSession{}, false
	}
	return ss, true
}

func (s *Server) getSharingSession(w http.ResponseWriter, r *http.Request) {
	if ss, ok := s.ownSharingSession(w, r); ok {
		writeJSON(w, http.StatusOK, ss)
	}
}

func (s *Server) revokeSharingSession(w http.ResponseWriter, r *http.Request) {
	ss, ok := s.ownSharingSession(w, r)
	if !ok {
		return
	}
	var req revokeRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}
	ss, _ = s.sharing.update(ss.SessionID, func(ss *sharingSession) {
		ss.Status = sharingStatusRevoked
		ss.RevokeReason = req.Reason
	})
	writeJSON(w, http.StatusOK, ss)
}

// Access sessions are kept per caller: the professional side of the API sees the sessions
// that the authenticated account has requested.
func (s *Server) listAccessSessions(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	writeJSON(w, http.StatusOK, s.accessSessions.filter(func(a accessSession) bool { return a.ownerID == userID }))
}

func (s *Server) ownAccessSession(w http.ResponseWriter, r *http.Request) (accessSession, bool) {
	a, ok := s.accessSessions.get(chi.URLParam(r, "id"))
	if !ok || a.ownerID != currentUserID(r) {
		writeError(w, http.StatusNotFound, "not_found", "access session not found")
		return accessSession{}, false
	}
	return a, true
}

func (s *Server) getAccessSession(w http.ResponseWriter, r *http.Request) {
	if a, ok := s.ownAccessSession(w, r); ok {
		writeJSON(w, http.StatusOK, a)
	}
}

// requestAccess creates a pending session under the ID in the path. Requesting an ID that
// another account already uses is a conflict.
func (s *Server) requestAccess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "session ID must be a UUID")
		return
	}
	var req accessRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, err := uuid.Parse(req.ProfessionalID); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "professionalId must be a UUID")
		return
	}
	if existing, ok := s.accessSessions.get(id); ok && existing.ownerID != currentUserID(r) {
		writeError(w, http.StatusConflict, "conflict", "access session already exists")
		return
	}
	a := accessSession{
		ID:             id,
		ProfessionalID: req.ProfessionalID,
		Status:         accessStatusPending,
		Reason:         req.Reason,
		RequestedAt:    s.now().UTC(),
		ownerID:        currentUserID(r),
	}
	s.accessSessions.set(a.ID, a)
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) approveAccess(w http.ResponseWriter, r *http.Request) {
	s.respondToAccess(w, r, accessStatusApproved)
}

func (s *Server) denyAccess(w http.ResponseWriter, r *http.Request) {
	s.respondToAccess(w, r, accessStatusDenied)
}

func (s *Server) respondToAccess(w http.ResponseWriter, r *http.Request, status string) {
	a, ok := s.ownAccessSession(w, r)
	if !ok {
		return
	}
	a, _ = s.accessSessions.update(a.ID, func(a *accessSession) {
		responded := s.now().UTC()
		a.Status = status
		a.RespondedAt = &responded
	})
	writeJSON(w, http.StatusOK, a)
}
