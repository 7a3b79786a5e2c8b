package server

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/hr-dashboard/internal/analytics"
)

// ---------------------------------------------------------------------
// Analytics Handlers
// ---------------------------------------------------------------------

const defaultTopPerformers = 5

func (s *Server) handleDepartmentAnalytics(w http.ResponseWriter, _ *http.Request) {
	stats := analytics.DepartmentPerformance(s.store.Employees())
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"departments": stats,
		"count":       len(stats),
	})
}

func (s *Server) handleTopPerformers(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", defaultTopPerformers, 20)
	top := analytics.TopPerformers(s.store.Employees(), limit)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"topPerformers": top,
		"count":         len(top),
	})
}

func (s *Server) handleBookmarkTrends(w http.ResponseWriter, _ *http.Request) {
	now := time.Now()
	rng := rand.New(rand.NewSource(now.UnixNano()))
	trends := analytics.BookmarkTrends(len(s.store.Bookmarked()), now, rng)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"trends": trends,
		"count":  len(trends),
	})
}

// parseQueryInt reads an integer query parameter with a default and a cap.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultValue
	}
	if maxValue > 0 && n > maxValue {
		return maxValue
	}
	return n
}
