package api

import (
	"net/http"

	"github.com/wishlist-santa/backend/internal/service"
)

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Age   *int    `json:"age" validate:"omitempty,gte=0"`
	About *string `json:"about"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.ListUsers(r.Context())
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleGetUserProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "User not found")
		return
	}

	user, events, err := s.svc.GetUserProfile(r.Context(), id)
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"user":   user,
		"events": events,
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if details := validateRequest(req); details != nil {
		s.respondValidationErrors(w, details)
		return
	}

	user, err := s.svc.UpdateProfile(r.Context(), actorID(r), service.ProfilePatch{
		Name:  req.Name,
		Age:   req.Age,
		About: req.About,
	})
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
