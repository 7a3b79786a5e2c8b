package server

import (
	"net/http"
	"strconv"
)

// ---------------------------------------------------------------------
// Bookmark Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListBookmarks(w http.ResponseWriter, _ *http.Request) {
	list := s.store.Bookmarked()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"bookmarks": list,
		"count":     len(list),
	})
}

func (s *Server) handleGetBookmark(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":         id,
		"bookmarked": s.store.IsBookmarked(id),
	})
}

// handleToggleBookmark flips the bookmark state for an id. Toggling an id
// that is neither bookmarked nor present in the full set is a no-op that
// reports bookmarked=false, matching the store's silent-miss semantics.
func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	bookmarked := s.store.ToggleBookmark(r.Context(), id)
	s.metrics.bookmarkToggles.Inc()
	count := len(s.store.Bookmarked())
	s.metrics.bookmarked.Set(float64(count))

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":         id,
		"bookmarked": bookmarked,
		"count":      count,
	})
}
