package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/iho/networth/internal/usecase"
)

// SnapshotStore implements usecase.SnapshotStore in process memory.
type SnapshotStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewSnapshotStore creates an empty SnapshotStore.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, usecase.ErrSnapshotNotFound
	}
	return slices.Clone(v), nil
}

// Set overwrites the value stored under key.
func (s *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = slices.Clone(value)
	return nil
}
