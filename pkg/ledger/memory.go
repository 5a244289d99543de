package ledger

import (
	"context"
	"sync"
)

// MemoryStore keeps the whole keyspace in a map. It backs tests and the
// non-durable deployment mode.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key Key) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key Key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(key, value)
	return nil
}

func (s *MemoryStore) Apply(_ context.Context, writes []Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range writes {
		s.put(w.Key, w.Value)
	}
	return nil
}

// ExtendLifetime is a no-op: an in-memory keyspace has no retention window.
func (s *MemoryStore) ExtendLifetime(_ context.Context, _, _ uint32) error {
	return nil
}

// Len reports the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) put(key Key, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	s.entries[key] = v
}
