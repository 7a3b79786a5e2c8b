package employee

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/hr-dashboard/internal/bookmarks"
	"github.com/jonathan/hr-dashboard/internal/directory"
)

// Source supplies the raw record page the store loads at session start.
type Source interface {
	Users(ctx context.Context) ([]directory.Person, error)
}

// Store is the single source of truth for the enriched employee set, the
// active filter criteria, the derived filtered view, and the bookmark set.
//
// All mutations go through the store and recompute the filtered view before
// returning, so readers never observe stale derived state. Bookmark entries
// are value snapshots taken at bookmark time: a later promotion does not
// refresh an existing snapshot until the employee is toggled off and back on.
// That mirrors the original dashboard's behavior and is deliberate; see
// DESIGN.md.
type Store struct {
	mu        sync.RWMutex
	log       *zap.Logger
	source    Source
	enricher  *Enricher
	persisted bookmarks.Store

	employees  []Employee
	filtered   []Employee
	bookmarked []Employee
	criteria   Criteria
	loading    bool
	errMsg     string
}

// NewStore wires a store to its collaborators. The store starts in the
// loading state; call Load once before serving reads.
func NewStore(source Source, enricher *Enricher, persisted bookmarks.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		log:       log,
		source:    source,
		enricher:  enricher,
		persisted: persisted,
		loading:   true,
	}
}

// Load fetches the raw record page, enriches it, and reconciles the
// persisted bookmark ids against the fresh set. It runs once per session;
// on failure the store records an error state and the set stays empty. No
// retry is attempted.
func (s *Store) Load(ctx context.Context) error {
	people, err := s.source.Users(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.errMsg = "failed to fetch employees"
		s.log.Error("directory load failed", zap.Error(err))
		return fmt.Errorf("loading employees: %w", err)
	}

	s.errMsg = ""
	s.employees = s.enricher.EnrichAll(people)
	s.recompute()
	s.log.Info("employees loaded", zap.Int("count", len(s.employees)))

	ids, err := s.persisted.Load(ctx)
	if err != nil {
		// A broken bookmark store must not take down the session; start
		// with an empty bookmark set instead.
		s.log.Error("bookmark load failed", zap.Error(err))
		return nil
	}
	s.bookmarked = s.bookmarked[:0]
	for _, id := range ids {
		if e, ok := s.findLocked(id); ok {
			s.bookmarked = append(s.bookmarked, e)
		} else {
			s.log.Debug("dropping persisted bookmark for unknown id", zap.Int("id", id))
		}
	}
	return nil
}

// SetSearchTerm replaces the active search term. An empty string clears it.
func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.SearchTerm = term
	s.recompute()
}

// ToggleDepartmentFilter adds the department to the selection if absent and
// removes it if present.
func (s *Store) ToggleDepartmentFilter(dept Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.criteria.Departments {
		if d == dept {
			s.criteria.Departments = append(s.criteria.Departments[:i], s.criteria.Departments[i+1:]...)
			s.recompute()
			return
		}
	}
	s.criteria.Departments = append(s.criteria.Departments, dept)
	s.recompute()
}

// ToggleRatingFilter adds the rating to the selection if absent and removes
// it if present.
func (s *Store) ToggleRatingFilter(rating int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.criteria.Ratings {
		if r == rating {
			s.criteria.Ratings = append(s.criteria.Ratings[:i], s.criteria.Ratings[i+1:]...)
			s.recompute()
			return
		}
	}
	s.criteria.Ratings = append(s.criteria.Ratings, rating)
	s.recompute()
}

// ResetFilters clears the search term and both selection sets atomically.
func (s *Store) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = Criteria{}
	s.recompute()
}

// ToggleBookmark removes the id from the bookmark set if present, otherwise
// snapshots the matching employee into it. Unknown ids are a silent no-op.
// After any successful mutation the full id list is persisted; persistence
// failures are logged, not surfaced.
func (s *Store) ToggleBookmark(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.bookmarked {
		if e.ID == id {
			s.bookmarked = append(s.bookmarked[:i], s.bookmarked[i+1:]...)
			s.persistBookmarksLocked(ctx)
			return false
		}
	}

	e, ok := s.findLocked(id)
	if !ok {
		return false
	}
	s.bookmarked = append(s.bookmarked, e)
	s.persistBookmarksLocked(ctx)
	return true
}

// IsBookmarked reports whether the id is currently in the bookmark set.
func (s *Store) IsBookmarked(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.bookmarked {
		if e.ID == id {
			return true
		}
	}
	return false
}

// PromoteEmployee increments the employee's performance score, clamped at
// MaxPerformance. Unknown ids leave the set unchanged. Existing bookmark
// snapshots are not refreshed.
func (s *Store) PromoteEmployee(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == id {
			if s.employees[i].Performance < MaxPerformance {
				s.employees[i].Performance++
			}
			s.recompute()
			s.log.Info("employee promoted",
				zap.Int("id", id),
				zap.Int("performance", s.employees[i].Performance))
			return
		}
	}
}

// Employees returns a copy of the full enriched set.
func (s *Store) Employees() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Employee(nil), s.employees...)
}

// Filtered returns a copy of the derived filtered view.
func (s *Store) Filtered() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Employee(nil), s.filtered...)
}

// Bookmarked returns a copy of the bookmark snapshots in bookmark order.
func (s *Store) Bookmarked() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Employee(nil), s.bookmarked...)
}

// ByID looks an employee up in the full set.
func (s *Store) ByID(id int) (Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(id)
}

// Criteria returns a copy of the active filter criteria.
func (s *Store) Criteria() Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria.clone()
}

// Loading reports whether the initial load is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the stored load error message, empty when healthy.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// recompute refreshes the derived filtered view. Callers hold the lock.
// Every mutator funnels through here, so the view can never drift from the
// criteria.
func (s *Store) recompute() {
	s.filtered = Apply(s.employees, s.criteria)
}

func (s *Store) findLocked(id int) (Employee, bool) {
	for _, e := range s.employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

func (s *Store) persistBookmarksLocked(ctx context.Context) {
	ids := make([]int, 0, len(s.bookmarked))
	for _, e := range s.bookmarked {
		ids = append(ids, e.ID)
	}
	if err := s.persisted.Save(ctx, ids); err != nil {
		s.log.Error("bookmark save failed", zap.Error(err), zap.Ints("ids", ids))
	}
}
