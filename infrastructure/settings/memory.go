package settings

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]map[string][]byte
}

// NewMemoryStore cria um Store em memória, usado em desenvolvimento e testes
func NewMemoryStore() Store {
	return &memoryStore{
		values: make(map[string]map[string][]byte),
	}
}

func (s *memoryStore) Get(_ context.Context, sessionID, key string, dest any) (bool, error) {
	if sessionID == "" {
		return false, ErrSessionRequired
	}

	s.mu.RLock()
	raw, exists := s.values[sessionID][key]
	s.mu.RUnlock()

	if !exists {
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}

	return true, nil
}

func (s *memoryStore) Set(_ context.Context, sessionID, key string, value any) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values[sessionID] == nil {
		s.values[sessionID] = make(map[string][]byte)
	}
	s.values[sessionID][key] = raw

	return nil
}

func (s *memoryStore) Clear(_ context.Context, sessionID, key string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values[sessionID], key)
	if len(s.values[sessionID]) == 0 {
		delete(s.values, sessionID)
	}

	return nil
}

func (s *memoryStore) Sessions(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.values))
	for sessionID := range s.values {
		sessions = append(sessions, sessionID)
	}
	sort.Strings(sessions)

	return sessions, nil
}
