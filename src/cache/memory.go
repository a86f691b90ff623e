package cache

import (
	"context"
	"sync"
)

// MemoryStore is a thread-safe in-process Store. Entries live until the
// process exits.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]Entry),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &entry, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = *entry
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
