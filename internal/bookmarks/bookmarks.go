// Package bookmarks persists the bookmarked employee id list across sessions.
// The persisted value is always the complete id list, overwritten on every
// mutation; there is no incremental update protocol.
package bookmarks

import (
	"context"
	"sync"
)

// Key is the fixed key the id list is stored under, shared by every backend.
const Key = "bookmarkedEmployees"

// Store is a durable key-value bridge for the bookmark id list.
type Store interface {
	// Load returns the persisted id list, or nil when nothing was saved yet.
	Load(ctx context.Context) ([]int, error)
	// Save overwrites the persisted id list.
	Save(ctx context.Context, ids []int) error
	Close() error
}

// Memory is an in-process Store used by tests and as the fallback backend.
type Memory struct {
	mu  sync.Mutex
	ids []int
	set bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load implements Store.
func (m *Memory) Load(_ context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, nil
	}
	return append([]int(nil), m.ids...), nil
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, ids []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = append([]int(nil), ids...)
	m.set = true
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
