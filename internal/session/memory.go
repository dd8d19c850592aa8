package session

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore builds a process-local credential store.
func NewMemoryStore() Store {
	return &memoryStore{values: make(map[string][]byte)}
}

func (s *memoryStore) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return string(s.values[TokenKey]), nil
}

func (s *memoryStore) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[TokenKey] = []byte(token)
	return nil
}

func (s *memoryStore) User(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.values[UserKey]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (s *memoryStore) SetUser(_ context.Context, user []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[UserKey] = append([]byte(nil), user...)
	return nil
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, TokenKey)
	delete(s.values, UserKey)
	return nil
}
