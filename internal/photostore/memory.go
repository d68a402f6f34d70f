package photostore

import (
	"context"
	"sync"
)

// MemoryStore keeps photo records in process memory. Suitable for tests and
// ephemeral runs.
type MemoryStore struct {
	mu     sync.RWMutex
	photos map[string][]Photo
}

// NewMemoryStore returns an empty in-memory photo store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{photos: make(map[string][]Photo)}
}

// Append adds photo records for the given equipment id.
func (s *MemoryStore) Append(ctx context.Context, equipmentID string, photos []Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.photos[equipmentID] = append(s.photos[equipmentID], photos...)
	return nil
}

// List returns the photo records stored for the given equipment id in append
// order.
func (s *MemoryStore) List(ctx context.Context, equipmentID string) ([]Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.photos[equipmentID]
	out := make([]Photo, len(stored))
	copy(out, stored)
	return out, nil
}
