package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jonathan/hr-dashboard/internal/employee"
)

// ---------------------------------------------------------------------
// Filter Handlers
// ---------------------------------------------------------------------

// SearchRequest carries a search term update.
type SearchRequest struct {
	Term string `json:"term"`
}

func (s *Server) handleGetFilters(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Criteria())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.store.SetSearchTerm(req.Term)
	s.respondCriteria(w)
}

// handleSearchDebounced commits the term only after the quiet window with no
// further input, so a burst of keystrokes filters once. The response is
// accepted, not applied.
func (s *Server) handleSearchDebounced(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.debouncer.Trigger(req.Term)
	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleToggleDepartment(w http.ResponseWriter, r *http.Request) {
	dept, ok := employee.ParseDepartment(r.PathValue("department"))
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Unknown department")
		return
	}

	s.store.ToggleDepartmentFilter(dept)
	s.respondCriteria(w)
}

func (s *Server) handleToggleRating(w http.ResponseWriter, r *http.Request) {
	rating, err := strconv.Atoi(r.PathValue("rating"))
	if err != nil || rating < employee.MinPerformance || rating > employee.MaxPerformance {
		s.errorResponse(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	s.store.ToggleRatingFilter(rating)
	s.respondCriteria(w)
}

func (s *Server) handleResetFilters(w http.ResponseWriter, _ *http.Request) {
	s.store.ResetFilters()
	s.respondCriteria(w)
}

func (s *Server) respondCriteria(w http.ResponseWriter) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"criteria": s.store.Criteria(),
		"count":    len(s.store.Filtered()),
	})
}
