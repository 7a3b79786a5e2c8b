package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/hr-dashboard/internal/bookmarks"
	"github.com/jonathan/hr-dashboard/internal/directory"
	"github.com/jonathan/hr-dashboard/internal/employee"
)

type stubSource struct {
	people []directory.Person
	err    error
}

func (s *stubSource) Users(_ context.Context) ([]directory.Person, error) {
	return s.people, s.err
}

func stubPeople() []directory.Person {
	return []directory.Person{
		{ID: 1, FirstName: "Emily", LastName: "Johnson", Email: "emily.johnson@x.dummyjson.com", Age: 28},
		{ID: 2, FirstName: "Michael", LastName: "Williams", Email: "michael.williams@x.dummyjson.com", Age: 35},
		{ID: 3, FirstName: "Sophia", LastName: "Brown", Email: "sophia.brown@x.dummyjson.com", Age: 42},
	}
}

func newTestServer(t *testing.T) (*Server, *employee.Store) {
	t.Helper()
	store := employee.NewStore(&stubSource{people: stubPeople()}, employee.NewEnricher(42), bookmarks.NewMemory(), zap.NewNop())
	require.NoError(t, store.Load(context.Background()))
	srv := New(Config{Port: 0, Store: store, Logger: zap.NewNop()})
	t.Cleanup(func() {
		srv.debouncer.Stop()
		srv.rateLimiter.Stop()
	})
	return srv, store
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestHandleHealth_DegradedAfterFailedLoad(t *testing.T) {
	store := employee.NewStore(&stubSource{err: errors.New("boom")}, employee.NewEnricher(42), bookmarks.NewMemory(), zap.NewNop())
	require.Error(t, store.Load(context.Background()))
	srv := New(Config{Port: 0, Store: store, Logger: zap.NewNop()})
	t.Cleanup(func() {
		srv.debouncer.Stop()
		srv.rateLimiter.Stop()
	})

	w := httptest.NewRecorder()
	srv.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", decodeBody(t, w)["status"])

	// the grid endpoint reports the stored error
	w = httptest.NewRecorder()
	srv.handleListEmployees(w, httptest.NewRequest(http.MethodGet, "/employees", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "failed to fetch employees", decodeBody(t, w)["error"])
}

func TestHandleListEmployees(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.handleListEmployees(w, httptest.NewRequest(http.MethodGet, "/employees", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["count"])
	assert.Len(t, body["employees"], 3)
}

func TestHandleGetEmployee(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/employees/2", nil)
	req.SetPathValue("id", "2")
	w := httptest.NewRecorder()
	srv.handleGetEmployee(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["bookmarked"])
	e, ok := body["employee"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), e["id"])
	assert.Equal(t, "Michael", e["firstName"])
}

func TestHandleGetEmployee_Errors(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/employees/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()
	srv.handleGetEmployee(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid employee ID", decodeBody(t, w)["error"])

	req = httptest.NewRequest(http.MethodGet, "/employees/9999", nil)
	req.SetPathValue("id", "9999")
	w = httptest.NewRecorder()
	srv.handleGetEmployee(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Employee not found", decodeBody(t, w)["error"])
}

func TestHandlePromoteEmployee_ClampsAtCeiling(t *testing.T) {
	srv, store := newTestServer(t)

	var last map[string]any
	for i := 0; i < employee.MaxPerformance+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/employees/1/promote", nil)
		req.SetPathValue("id", "1")
		w := httptest.NewRecorder()
		srv.handlePromoteEmployee(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		last = decodeBody(t, w)
	}

	assert.Equal(t, "promoted", last["status"])
	e, ok := last["employee"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(employee.MaxPerformance), e["performance"])

	current, ok := store.ByID(1)
	require.True(t, ok)
	assert.Equal(t, employee.MaxPerformance, current.Performance)
}

func TestHandlePromoteEmployee_UnknownID(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/employees/9999/promote", nil)
	req.SetPathValue("id", "9999")
	w := httptest.NewRecorder()
	srv.handlePromoteEmployee(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleToggleBookmark(t *testing.T) {
	srv, store := newTestServer(t)

	toggle := func(id string) map[string]any {
		req := httptest.NewRequest(http.MethodPost, "/bookmarks/"+id+"/toggle", nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		srv.handleToggleBookmark(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		return decodeBody(t, w)
	}

	body := toggle("2")
	assert.Equal(t, true, body["bookmarked"])
	assert.Equal(t, float64(1), body["count"])
	assert.True(t, store.IsBookmarked(2))

	body = toggle("2")
	assert.Equal(t, false, body["bookmarked"])
	assert.Equal(t, float64(0), body["count"])

	// unknown id is a silent no-op
	body = toggle("9999")
	assert.Equal(t, false, body["bookmarked"])
	assert.Equal(t, float64(0), body["count"])
}

func TestHandleListBookmarks(t *testing.T) {
	srv, store := newTestServer(t)
	store.ToggleBookmark(context.Background(), 3)
	store.ToggleBookmark(context.Background(), 1)

	w := httptest.NewRecorder()
	srv.handleListBookmarks(w, httptest.NewRequest(http.MethodGet, "/bookmarks", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])

	list, ok := body["bookmarks"].([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
	first, ok := list[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), first["id"])
}

func TestHandleGetBookmark(t *testing.T) {
	srv, store := newTestServer(t)
	store.ToggleBookmark(context.Background(), 1)

	req := httptest.NewRequest(http.MethodGet, "/bookmarks/1", nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	srv.handleGetBookmark(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["bookmarked"])

	req = httptest.NewRequest(http.MethodGet, "/bookmarks/2", nil)
	req.SetPathValue("id", "2")
	w = httptest.NewRecorder()
	srv.handleGetBookmark(w, req)
	assert.Equal(t, false, decodeBody(t, w)["bookmarked"])
}

func TestSearchNarrowsTheGrid(t *testing.T) {
	srv, store := newTestServer(t)

	w := httptest.NewRecorder()
	srv.handleSearch(w, httptest.NewRequest(http.MethodPost, "/filters/search", strings.NewReader(`{"term": "sophia"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "sophia", store.Criteria().SearchTerm)

	w = httptest.NewRecorder()
	srv.handleListEmployees(w, httptest.NewRequest(http.MethodGet, "/employees", nil))
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
}

func TestHandleSearch_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.handleSearch(w, httptest.NewRequest(http.MethodPost, "/filters/search", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleToggleDepartment(t *testing.T) {
	srv, store := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/filters/departments/Engineering/toggle", nil)
	req.SetPathValue("department", "Engineering")
	w := httptest.NewRecorder()
	srv.handleToggleDepartment(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []employee.Department{employee.DeptEngineering}, store.Criteria().Departments)

	req = httptest.NewRequest(http.MethodPost, "/filters/departments/Legal/toggle", nil)
	req.SetPathValue("department", "Legal")
	w = httptest.NewRecorder()
	srv.handleToggleDepartment(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown department", decodeBody(t, w)["error"])
}

func TestHandleToggleRating(t *testing.T) {
	srv, store := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/filters/ratings/4/toggle", nil)
	req.SetPathValue("rating", "4")
	w := httptest.NewRecorder()
	srv.handleToggleRating(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{4}, store.Criteria().Ratings)

	for _, raw := range []string{"0", "6", "abc"} {
		req = httptest.NewRequest(http.MethodPost, "/filters/ratings/"+raw+"/toggle", nil)
		req.SetPathValue("rating", raw)
		w = httptest.NewRecorder()
		srv.handleToggleRating(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %q", raw)
		assert.Equal(t, "Rating must be between 1 and 5", decodeBody(t, w)["error"])
	}
}

func TestHandleResetFilters(t *testing.T) {
	srv, store := newTestServer(t)
	store.SetSearchTerm("sophia")
	store.ToggleRatingFilter(3)

	w := httptest.NewRecorder()
	srv.handleResetFilters(w, httptest.NewRequest(http.MethodPost, "/filters/reset", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeBody(t, w)["count"])
	assert.Equal(t, employee.Criteria{}, store.Criteria())
}

func TestHandleSearchDebounced_AcceptsWithoutApplying(t *testing.T) {
	srv, store := newTestServer(t)

	w := httptest.NewRecorder()
	srv.handleSearchDebounced(w, httptest.NewRequest(http.MethodPost, "/filters/search/debounced", strings.NewReader(`{"term": "sophia"}`)))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "accepted", decodeBody(t, w)["status"])

	// the term has not reached the criteria yet
	assert.Empty(t, store.Criteria().SearchTerm)
	srv.debouncer.Flush()
	assert.Equal(t, "sophia", store.Criteria().SearchTerm)
}

func TestHandleDepartmentAnalytics(t *testing.T) {
	srv, store := newTestServer(t)

	w := httptest.NewRecorder()
	srv.handleDepartmentAnalytics(w, httptest.NewRequest(http.MethodGet, "/analytics/departments", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	stats, ok := body["departments"].([]any)
	require.True(t, ok)
	assert.Equal(t, float64(len(stats)), body["count"])

	total := 0
	for _, raw := range stats {
		stat, ok := raw.(map[string]any)
		require.True(t, ok)
		total += int(stat["count"].(float64))
	}
	assert.Equal(t, len(store.Employees()), total)
}

func TestHandleTopPerformers_LimitParam(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.handleTopPerformers(w, httptest.NewRequest(http.MethodGet, "/analytics/top-performers?limit=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])

	// junk limit falls back to the default, capped at the set size
	w = httptest.NewRecorder()
	srv.handleTopPerformers(w, httptest.NewRequest(http.MethodGet, "/analytics/top-performers?limit=-3", nil))
	assert.Equal(t, float64(3), decodeBody(t, w)["count"])
}

func TestHandleBookmarkTrends(t *testing.T) {
	srv, store := newTestServer(t)
	store.ToggleBookmark(context.Background(), 1)
	store.ToggleBookmark(context.Background(), 2)

	w := httptest.NewRecorder()
	srv.handleBookmarkTrends(w, httptest.NewRequest(http.MethodGet, "/analytics/bookmark-trends", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	trends, ok := body["trends"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, trends)

	last, ok := trends[len(trends)-1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), last["bookmarks"])
}

func TestRouting_ThroughFullMiddlewareChain(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))

	// method patterns reject mismatched verbs
	req = httptest.NewRequest(http.MethodDelete, "/employees", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouting_OptionsPreflightShortCircuits(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/employees", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestRouting_PropagatesCallerRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	req.Header.Set("X-Request-ID", "caller-supplied")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "caller-supplied", w.Header().Get("X-Request-ID"))
}
