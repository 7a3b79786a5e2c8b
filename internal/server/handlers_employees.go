package server

import (
	"net/http"
	"strconv"
)

// ---------------------------------------------------------------------
// Employee Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListEmployees(w http.ResponseWriter, _ *http.Request) {
	if msg := s.store.Err(); msg != "" {
		s.errorResponse(w, http.StatusServiceUnavailable, msg)
		return
	}
	if s.store.Loading() {
		s.errorResponse(w, http.StatusServiceUnavailable, "employees are still loading")
		return
	}

	list := s.store.Filtered()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"employees": list,
		"count":     len(list),
	})
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	e, ok := s.store.ByID(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Employee not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"employee":   e,
		"bookmarked": s.store.IsBookmarked(id),
	})
}

func (s *Server) handlePromoteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	if _, ok := s.store.ByID(id); !ok {
		s.errorResponse(w, http.StatusNotFound, "Employee not found")
		return
	}

	s.store.PromoteEmployee(id)
	s.metrics.promotions.Inc()

	e, _ := s.store.ByID(id)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "promoted",
		"employee": e,
	})
}
