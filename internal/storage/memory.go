package storage

import (
	"context"
	"sync"

	"github.com/pauljones0/garden-stock-bot/internal/models"
)

// MemoryStore is a process-local store. State is lost on restart.
type MemoryStore struct {
	mu        sync.Mutex
	snapshots map[string]models.Snapshot
}

func NewMemory() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]models.Snapshot)}
}

func (s *MemoryStore) GetSnapshot(_ context.Context, key string) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snapshots[key]
	if !ok {
		return nil, nil
	}
	c := snap.Clone()
	return &c, nil
}

func (s *MemoryStore) SetSnapshot(_ context.Context, key string, snap models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key] = snap.Clone()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
