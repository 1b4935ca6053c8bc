// Package memory implements an in-process preference store for tests and
// ephemeral deployments.
package memory

import (
	"context"
	"errors"
	"sync"

	"astrobrasil/pkg/domain"
)

var _ domain.PreferenceStore = (*Store)(nil)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("preference store closed")

// Store keeps preferences in a map guarded by a RWMutex.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewStore returns an empty in-memory preference store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value stored for key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.values[key] = value
	return nil
}

// Close marks the store closed. It is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
