package driving

import (
	"context"

	"github.com/spatialshot/spatialshot/internal/core/domain"
)

// AuthService signs the user in through the browser and manages the stored profile.
type AuthService interface {
	// StartAuth runs one login attempt and blocks until it ends.
	// Setup failures (bad client config, port in use, no browser) and
	// domain.ErrAuthInProgress are returned. Denial and protocol failures are
	// not errors; they are reported through the Notifier.
	StartAuth(ctx context.Context) error

	// State reports whether a login attempt is in flight.
	State() domain.AuthFlowState

	// Logout deletes the stored profile. Secrets are left intact.
	Logout() error

	// GetProfile returns the stored profile, or the guest profile if none
	// is stored or it cannot be read.
	GetProfile() domain.UserProfile
}
