package api

import (
	"net/http"
	"time"

	"github.com/wishlist-santa/backend/internal/apperr"
	"github.com/wishlist-santa/backend/internal/service"
)

const sessionCookieName = "session"

// The cookie is SameSite=None so the hosted frontend on another origin can
// send it; that combination requires Secure.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.sessions.TTL()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// beginSession issues a token for the user and sets the cookie. Returns false
// after responding when token issuance fails.
func (s *Server) beginSession(w http.ResponseWriter, userID int64) bool {
	token, err := s.sessions.Issue(userID)
	if err != nil {
		s.logger.WithError(err).Error("failed to issue session token")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return false
	}
	s.setSessionCookie(w, token)
	return true
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

type registerRequest struct {
	Username string  `json:"username" validate:"required"`
	Password string  `json:"password" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Age      *int    `json:"age" validate:"omitempty,gte=0"`
	About    *string `json:"about"`
}

// Required-field checks for login live in the service layer, which owns the
// exact error message.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if details := validateRequest(req); details != nil {
		s.respondValidationErrors(w, details)
		return
	}

	user, err := s.svc.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Age:      req.Age,
		About:    req.About,
	})
	if err != nil {
		s.respondAppError(w, err)
		return
	}

	if !s.beginSession(w, user.ID) {
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"user":    user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := s.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.respondAppError(w, err)
		return
	}

	if !s.beginSession(w, user.ID) {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.GetUser(r.Context(), actorID(r))
	if err != nil {
		// The session outlived the account; treat it as unauthenticated.
		// Anything else (e.g. a storage failure) is not an auth problem.
		if apperr.KindOf(err) == apperr.NotFound {
			s.respondError(w, http.StatusUnauthorized, "Login required")
			return
		}
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if id, ok := s.sessionUserID(r); ok {
		if user, err := s.svc.GetUser(r.Context(), id); err == nil {
			s.respondJSON(w, http.StatusOK, map[string]any{
				"authenticated": true,
				"user":          user,
			})
			return
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"authenticated": false})
}
