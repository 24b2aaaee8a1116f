// Package mock provides test doubles for the room filter service.
// These fakes are designed for tests that need configurable behavior
// (injected failures, call counting) without a real backing store.
package mock

import (
	"sync"

	"github.com/hotel-site/room-filter/internal/query"
)

// Storage is a configurable in-memory implementation of query.Storage.
// It supports injected read/write errors for testing best-effort persistence.
type Storage struct {
	mu       sync.Mutex
	values   map[string]string
	getErr   error
	setErr   error
	setCalls int
}

// NewStorage creates a new fake storage.
// The storage is configured using the builder pattern methods.
func NewStorage() *Storage {
	return &Storage{values: make(map[string]string)}
}

// WithValue seeds a stored value.
func (s *Storage) WithValue(key, value string) *Storage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s
}

// WithGetError configures Get to fail with err.
func (s *Storage) WithGetError(err error) *Storage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
	return s
}

// WithSetError configures Set to fail with err.
func (s *Storage) WithSetError(err error) *Storage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setErr = err
	return s
}

// Get implements query.Storage.Get.
func (s *Storage) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return "", query.ErrNotFound
	}
	return v, nil
}

// Set implements query.Storage.Set.
// Failed writes are counted but not stored.
func (s *Storage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

// Value returns the stored value for key.
func (s *Storage) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// SetCalls returns the number of times Set was called.
func (s *Storage) SetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCalls
}

// Ensure Storage implements query.Storage at compile time.
var _ query.Storage = (*Storage)(nil)
