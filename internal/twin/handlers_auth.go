package twin

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const minPasswordLength = 8

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Username *string `json:"username"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " ';\"")
}

// findUserByEmail compares emails case-insensitively.
func (s *Server) findUserByEmail(email string) (user, bool) {
	email = normalizeEmail(email)
	found := s.users.filter(func(u user) bool { return normalizeEmail(u.Email) == email })
	if len(found) == 0 {
		return user{}, false
	}
	return found[0], true
}

// createUser validates a registration and stores the new user. On failure it writes the
// error response and returns false. An empty or missing username defaults to the email.
func (s *Server) createUser(w http.ResponseWriter, req registerRequest) (user, bool) {
	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		writeError(w, http.StatusBadRequest, "invalid_email", "a valid email address is required")
		return user{}, false
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "invalid_password", "password must be at least 8 characters")
		return user{}, false
	}
	if _, exists := s.findUserByEmail(email); exists {
		writeError(w, http.StatusConflict, "email_taken", "an account with this email already exists")
		return user{}, false
	}
	username := email
	if req.Username != nil && strings.TrimSpace(*req.Username) != "" {
		username = strings.TrimSpace(*req.Username)
	}
	u := user{
		ID:        uuid.NewString(),
		Email:     email,
		Username:  username,
		CreatedAt: s.now().UTC(),
		password:  req.Password,
	}
	s.users.set(u.ID, u)
	return u, true
}

func (s *Server) writeAuthResponse(w http.ResponseWriter, u user) {
	access, refresh, err := s.tokens.issuePair(u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, authResponse{AccessToken: access, RefreshToken: refresh, User: u})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, ok := s.createUser(w, req)
	if !ok {
		return
	}
	s.logger.Info("user registered", "userId", u.ID)
	s.writeAuthResponse(w, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validEmail(strings.TrimSpace(req.Email)) {
		writeError(w, http.StatusBadRequest, "invalid_email", "a valid email address is required")
		return
	}
	u, ok := s.findUserByEmail(req.Email)
	if !ok || u.password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}
	s.writeAuthResponse(w, u)
}

func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	claims, err := s.tokens.verify(req.RefreshToken, refreshTokenType)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid refresh token")
		return
	}
	u, ok := s.users.get(claims.Subject)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "user no longer exists")
		return
	}
	s.tokens.revoke(claims.ID)
	s.writeAuthResponse(w, u)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.tokens.revoke(currentPrincipal(r).tokenID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) getMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentPrincipal(r).user)
}

func (s *Server) updateMe(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username != nil && strings.TrimSpace(*req.Username) == "" {
		writeError(w, http.StatusBadRequest, "invalid_username", "username must not be empty")
		return
	}
	u, ok := s.users.update(currentUserID(r), func(u *user) {
		if req.Username != nil {
			u.Username = strings.TrimSpace(*req.Username)
		}
	})
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// deleteMe removes the user and everything the user owns.
func (s *Server) deleteMe(w http.ResponseWriter, r *http.Request) {
	id := currentUserID(r)
	if !s.users.delete(id) {
		writeError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	for _, l := range s.hairFallLogs.filter(func(l hairFallLog) bool { return l.UserID == id }) {
		s.hairFallLogs.delete(l.ID)
	}
	for _, i := range s.interventions.filter(func(i intervention) bool { return i.UserID == id }) {
		s.interventions.delete(i.ID)
	}
	for _, a := range s.applications.filter(func(a application) bool { return a.UserID == id }) {
		s.applications.delete(a.ID)
	}
	for _, p := range s.photos.filter(func(p photo) bool { return p.UserID == id }) {
		s.photos.delete(p.ID)
	}
	for _, ss := range s.sharing.filter(func(ss sharingSession) bool { return ss.UserID == id }) {
		s.sharing.delete(ss.SessionID)
	}
	for _, a := range s.accessSessions.filter(func(a accessSession) bool { return a.ownerID == id }) {
		s.accessSessions.delete(a.ID)
	}
	s.tokens.revoke(currentPrincipal(r).tokenID)
	s.logger.Info("user deleted", "userId", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.users.get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) createTestUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, ok := s.createUser(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, u)
}
