package api

import (
	"net/http"
)

func (s *Server) handleReserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Wish not found")
		return
	}

	wish, err := s.svc.Reserve(r.Context(), actorID(r), id)
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Wish reserved successfully",
		"wish":    wish,
	})
}

func (s *Server) handleUnreserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "Wish not found")
		return
	}

	wish, err := s.svc.Unreserve(r.Context(), actorID(r), id)
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Wish unreserved successfully",
		"wish":    wish,
	})
}

func (s *Server) handleMyReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := s.svc.MyReservations(r.Context(), actorID(r))
	if err != nil {
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}
