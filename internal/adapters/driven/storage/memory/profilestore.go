package memory

import (
	"sync"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore is an in-memory implementation of driven.ProfileStore for testing.
type ProfileStore struct {
	mu      sync.RWMutex
	profile *domain.UserProfile
	dirs    int
}

// NewProfileStore creates a new in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{}
}

// EnsureDir records that the directory was requested.
func (s *ProfileStore) EnsureDir() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirs++
	return nil
}

// EnsureDirCalls returns how many times EnsureDir was called.
func (s *ProfileStore) EnsureDirCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirs
}

// Save replaces the stored profile.
func (s *ProfileStore) Save(profile domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &profile
	return nil
}

// Load returns the stored profile.
func (s *ProfileStore) Load() (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil, domain.ErrNotFound
	}
	cp := *s.profile
	return &cp, nil
}

// Delete clears the stored profile.
func (s *ProfileStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	return nil
}

// Path returns the pseudo path of the profile.
func (s *ProfileStore) Path() string {
	return ":memory:/profile.json"
}
