// Package twin is an in-memory implementation of the hair-health API. It is used as the
// target of the contract tests' own tests, and can be run as a standalone server for local
// runs.
package twin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

// Config holds the server's settings. Zero values are replaced with defaults.
type Config struct {
	// Secret signs tokens. If empty, a fixed development secret is used.
	Secret          []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Logger          *slog.Logger
	// Now is the server's clock; it defaults to time.Now.
	Now func() time.Time
}

const (
	defaultSecret          = "hairhealth-twin-development-secret"
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
	signedURLTTL           = 15 * time.Minute
)

// Server is the twin's HTTP handler and state.
type Server struct {
	router chi.Router
	tokens *tokenIssuer
	logger *slog.Logger
	now    func() time.Time

	users          *table[user]
	hairFallLogs   *table[hairFallLog]
	interventions  *table[intervention]
	applications   *table[application]
	photos         *table[photo]
	sharing        *table[sharingSession]
	accessSessions *table[accessSession]
}

type contextKey struct{}

// New creates a Server with empty state.
func New(config Config) *Server {
	if len(config.Secret) == 0 {
		config.Secret = []byte(defaultSecret)
	}
	if config.AccessTokenTTL <= 0 {
		config.AccessTokenTTL = defaultAccessTokenTTL
	}
	if config.RefreshTokenTTL <= 0 {
		config.RefreshTokenTTL = defaultRefreshTokenTTL
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	s := &Server{
		tokens:         newTokenIssuer(config.Secret, config.AccessTokenTTL, config.RefreshTokenTTL, config.Now),
		logger:         config.Logger,
		now:            config.Now,
		users:          newTable[user](),
		hairFallLogs:   newTable[hairFallLog](),
		interventions:  newTable[intervention](),
		applications:   newTable[application](),
		photos:         newTable[photo](),
		sharing:        newTable[sharingSession](),
		accessSessions: newTable[accessSession](),
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLog)
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/test/public", s.publicTest)

		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)
		r.Post("/auth/refresh-token", s.refreshToken)

		r.Post("/users/test", s.createTestUser)

		r.Post("/dev/setup-test-user", s.setupTestUser)
		r.Post("/dev/setup-photo-data", s.setupPhotoData)
		r.Post("/dev/setup-intervention-data", s.setupInterventionData)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/test/protected", s.protectedTest)
			r.Get("/auth/me", s.getMe)
			r.Post("/auth/logout", s.logout)

			r.Get("/users/me", s.getMe)
			r.Put("/users/me", s.updateMe)
			r.Delete("/users/me", s.deleteMe)
			r.Get("/users/{id}", s.getUser)

			r.Route("/me/hair-fall-logs", func(r chi.Router) {
				r.Get("/", s.listHairFallLogs)
				r.Post("/", s.createHairFallLog)
				r.Get("/stats", s.hairFallStats)
				r.Get("/date-range", s.hairFallLogsByDateRange)
				r.Get("/{id}", s.getHairFallLog)
				r.Put("/{id}", s.updateHairFallLog)
				r.Delete("/{id}", s.deleteHairFallLog)
			})

			r.Route("/me/interventions", func(r chi.Router) {
				r.Get("/", s.listInterventions)
				r.Post("/", s.createIntervention)
				r.Get("/active", s.listActiveInterventions)
				r.Get("/{id}", s.getIntervention)
				r.Put("/{id}", s.updateIntervention)
				r.Post("/{id}/log-application", s.logApplication)
				r.Get("/{id}/applications", s.listApplications)
				r.Get("/{id}/adherence-stats", s.adherenceStats)
				r.Post("/{id}/deactivate", s.deactivateIntervention)
			})

			r.Route("/me/progress-photos", func(r chi.Router) {
				r.Get("/", s.listPhotos)
				r.Post("/upload-url", s.requestUploadURL)
				r.Get("/stats", s.photoStats)
				r.Get("/{id}", s.getPhoto)
				r.Delete("/{id}", s.deletePhoto)
				r.Post("/{id}/finalize", s.finalizePhoto)
				r.Get("/{id}/view-url", s.photoViewURL)
			})

			r.Route("/me/medical-sharing/sessions", func(r chi.Router) {
				r.Get("/", s.listSharingSessions)
				r.Post("/", s.createSharingSession)
				r.Get("/{id}", s.getSharingSession)
				r.Post("/{id}/revoke", s.revokeSharingSession)
			})

			r.Route("/professionals/me/medical-access/sessions", func(r chi.Router) {
				r.Get("/", s.listAccessSessions)
				r.Get("/{id}", s.getAccessSession)
				r.Post("/{id}/request-access", s.requestAccess)
				r.Post("/{id}/approve", s.approveAccess)
				r.Post("/{id}/deny", s.denyAccess)
			})
		})
	})
	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(started))
	})
}

// authenticate requires a valid, unrevoked access token for an existing user, and puts that
// user into the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header || token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		claims, err := s.tokens.verify(token, accessTokenType)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}
		u, ok := s.users.get(claims.Subject)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "user no longer exists")
			return
		}
		ctx := context.WithValue(r.Context(), contextKey{}, principal{user: u, tokenID: claims.ID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type principal struct {
	user    user
	tokenID string
}

func currentPrincipal(r *http.Request) principal {
	p, _ := r.Context().Value(contextKey{}).(principal)
	return p
}

func currentUserID(r *http.Request) string {
	return currentPrincipal(r).user.ID
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (s *Server) publicTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "public endpoint"})
}

func (s *Server) protectedTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "protected endpoint",
		"user":    currentPrincipal(r).user.Email,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// decodeBody reads a JSON request body. On failure it writes a 400 response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body: "+err.Error())
		return false
	}
	return true
}

// decodeOptionalBody is like decodeBody but accepts an empty body.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body: "+err.Error())
		return false
	}
	return true
}

func queryInt(r *http.Request, name string, defaultValue int) (int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(s)
	return n, err == nil && n >= 0
}

// paging reads the limit and offset query parameters. On failure it writes a 400 response
// and returns false.
func paging(w http.ResponseWriter, r *http.Request) (offset, limit int, ok bool) {
	offset, okOffset := queryInt(r, "offset", 0)
	limit, okLimit := queryInt(r, "limit", 0)
	if !okOffset || !okLimit {
		writeError(w, http.StatusBadRequest, "invalid_request", "limit and offset must be non-negative integers")
		return 0, 0, false
	}
	return offset, limit, true
}
