// Package memstore is a process-local KV used for ephemeral sessions and tests.
package memstore

import (
	"context"
	"sync"

	"github.com/idilsaglam/tasklist/internal/store"
)

type Store struct {
	mu     sync.RWMutex
	m      map[string]string
	closed bool
}

func New() *Store {
	return &Store{m: make(map[string]string)}
}

// Seed returns a store pre-filled with entries.
func Seed(entries map[string]string) *Store {
	s := New()
	for k, v := range entries {
		s.m[k] = v
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, store.ErrClosed
	}
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	s.m[key] = value
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Keys returns the stored keys in no particular order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return keys
}
