package credstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]string{}}
}

func (s *MemoryStore) Load(_ context.Context, scope string) (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return validate(&Credentials{
		Token:     s.entries[tokenKey(scope)],
		Principal: []byte(s.entries[principalKey(scope)]),
	})
}

func (s *MemoryStore) Save(_ context.Context, scope string, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[tokenKey(scope)] = creds.Token
	s.entries[principalKey(scope)] = string(creds.Principal)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, tokenKey(scope))
	delete(s.entries, principalKey(scope))
	return nil
}
