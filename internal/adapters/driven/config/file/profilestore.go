package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileFileName is the profile file inside the config directory.
const ProfileFileName = "profile.json"

// ProfileStore persists the signed-in user as pretty-printed JSON.
type ProfileStore struct {
	dir string
}

// NewProfileStore creates a profile store rooted at configDir.
func NewProfileStore(configDir string) *ProfileStore {
	return &ProfileStore{dir: configDir}
}

// EnsureDir creates the config directory with owner-only permissions.
func (s *ProfileStore) EnsureDir() error {
	return os.MkdirAll(s.dir, dirPerm)
}

// Save writes profile.json atomically.
func (s *ProfileStore) Save(profile domain.UserProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.Path(), data)
}

// Load reads profile.json.
// Returns domain.ErrNotFound if the file does not exist.
func (s *ProfileStore) Load() (*domain.UserProfile, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ProfileFileName, err)
	}
	return &profile, nil
}

// Delete removes profile.json if present.
func (s *ProfileStore) Delete() error {
	return removeIfExists(s.Path())
}

// Path returns the profile file path.
func (s *ProfileStore) Path() string {
	return filepath.Join(s.dir, ProfileFileName)
}
