package api

import (
	"net/http"

	"github.com/wishlist-santa/backend/internal/service"
)

// Description presence is checked in the service layer, which owns the exact
// error message.
type addWishRequest struct {
	Description string  `json:"description"`
	Link        *string `json:"link"`
}

type updateWishRequest struct {
	Description *string `json:"description"`
	Link        *string `json:"link"`
}

func (s *Server) handleAddWish(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Event not found")
		return
	}

	var req addWishRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	wish, err := s.svc.AddWish(r.Context(), actorID(r), eventID, service.AddWishInput{
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Wish added successfully",
		"wish":    wish,
	})
}

func (s *Server) handleUpdateWish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Wish not found")
		return
	}

	var req updateWishRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	wish, err := s.svc.UpdateWish(r.Context(), actorID(r), id, service.WishPatch{
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Wish updated successfully",
		"wish":    wish,
	})
}

func (s *Server) handleDeleteWish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Wish not found")
		return
	}

	if err := s.svc.DeleteWish(r.Context(), actorID(r), id); err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Wish deleted successfully"})
}
