package driven

import "github.com/spatialshot/spatialshot/internal/core/domain"

// ProfileStore persists the signed-in user's profile.
// There is at most one profile; saving overwrites it wholesale.
type ProfileStore interface {
	// EnsureDir creates the config directory if it does not exist.
	EnsureDir() error

	// Save writes the profile, replacing any existing one.
	Save(profile domain.UserProfile) error

	// Load reads the profile.
	// Returns domain.ErrNotFound if no profile has been saved.
	Load() (*domain.UserProfile, error)

	// Delete removes the profile. Deleting a missing profile is not an error.
	Delete() error

	// Path returns the profile file path.
	Path() string
}
