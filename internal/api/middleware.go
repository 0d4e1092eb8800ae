package api

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type contextKey string

// userIDKey holds the authenticated user's id in the request context. It is
// set once per request from the session cookie; nothing else carries
// identity.
const userIDKey contextKey = "userID"

// requireAuth rejects requests without a valid session cookie and stores the
// resolved user id in the request context for the handlers downstream.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.sessionUserID(r)
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "Login required")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionUserID resolves the session cookie to a user id, if any.
func (s *Server) sessionUserID(r *http.Request) (int64, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return 0, false
	}
	id, err := s.sessions.Parse(cookie.Value)
	if err != nil {
		return 0, false
	}
	return id, true
}

// actorID returns the authenticated user id stored by requireAuth.
func actorID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.WithFields(map[string]any{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request handled")
	})
}
