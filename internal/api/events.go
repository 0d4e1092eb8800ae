package api

import (
	"net/http"

	"github.com/wishlist-santa/backend/internal/service"
)

// Title and date presence is checked in the service layer, which owns the
// exact error message.
type createEventRequest struct {
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
}

type updateEventRequest struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.svc.ListEvents(r.Context(), actorID(r))
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	event, err := s.svc.CreateEvent(r.Context(), actorID(r), service.CreateEventInput{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Event created successfully",
		"event":   event,
	})
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Event not found")
		return
	}

	var req updateEventRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	event, err := s.svc.UpdateEvent(r.Context(), actorID(r), id, service.EventPatch{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Event updated successfully",
		"event":   event,
	})
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Event not found")
		return
	}

	if err := s.svc.DeleteEvent(r.Context(), actorID(r), id); err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}
