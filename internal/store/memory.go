package store

import (
	"context"
	"sync"
)

// MemoryStore implements Store with an in-process map, suitable for tests
// and running without a database path configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]map[string]any
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]map[string]any)}
}

// Get returns a copy of the stored attributes.
func (s *MemoryStore) Get(_ context.Context, userID string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attrs, ok := s.items[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyAttrs(attrs), nil
}

// Put replaces the stored attributes with a copy of attrs.
func (s *MemoryStore) Put(_ context.Context, userID string, attrs map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[userID] = copyAttrs(attrs)
	return nil
}

func copyAttrs(attrs map[string]any) map[string]any {
	copied := make(map[string]any, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return copied
}
