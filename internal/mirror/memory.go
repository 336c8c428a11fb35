package mirror

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used by tests and the CLI dry-run
// mode. Values are copied on read and write so callers never share slices.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	cloned := make([]byte, len(data))
	copy(cloned, data)
	return cloned, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, data []byte) error {
	cloned := make([]byte, len(data))
	copy(cloned, data)
	s.mu.Lock()
	s.data[key] = cloned
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
