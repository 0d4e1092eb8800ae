// Package api exposes the wishlist operations over HTTP/JSON. Handlers
// resolve the acting user from the session cookie, delegate to the service
// layer and translate taxonomy errors into status codes.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/wishlist-santa/backend/internal/apperr"
	"github.com/wishlist-santa/backend/internal/service"
	"github.com/wishlist-santa/backend/internal/session"
)

// Server provides the HTTP API.
type Server struct {
	svc        *service.Service
	sessions   *session.Manager
	logger     *logrus.Logger
	corsOrigin string
	router     chi.Router
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(svc *service.Service, sessions *session.Manager, logger *logrus.Logger, corsOrigin string) *Server {
	s := &Server{
		svc:        svc,
		sessions:   sessions,
		logger:     logger,
		corsOrigin: corsOrigin,
		router:     chi.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)
	s.router.Use(s.logRequests)
	s.router.Use(s.measureRequests)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)
		r.Get("/auth/check", s.handleCheck)
		r.Get("/users", s.handleListUsers)
		r.Get("/users/{id}", s.handleGetUserProfile)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/auth/me", s.handleMe)
			r.Put("/users/profile", s.handleUpdateProfile)

			r.Get("/events", s.handleListEvents)
			r.Post("/events", s.handleCreateEvent)
			r.Put("/events/{id}", s.handleUpdateEvent)
			r.Delete("/events/{id}", s.handleDeleteEvent)

			r.Post("/events/{id}/wishes", s.handleAddWish)
			r.Put("/wishes/{id}", s.handleUpdateWish)
			r.Delete("/wishes/{id}", s.handleDeleteWish)

			r.Post("/wishes/{id}/reserve", s.handleReserve)
			r.Delete("/wishes/{id}/unreserve", s.handleUnreserve)
			r.Get("/my-reservations", s.handleMyReservations)
		})
	})
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondAppError maps a taxonomy error to its status code. Unclassified
// errors are logged and surfaced as a bare 500.
func (s *Server) respondAppError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed")
	}
	s.respondError(w, status, apperr.MessageOf(err))
}

// decodeJSON reads the request body into dst and returns an error message on
// failure.  The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil {
		return false, "request body is empty"
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

// pathID extracts the {id} route parameter and converts it to int64.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, fmt.Errorf("missing id in path")
	}
	return strconv.ParseInt(raw, 10, 64)
}
