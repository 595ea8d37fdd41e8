package driven

import (
	"context"

	"github.com/spatialshot/spatialshot/internal/core/domain"
)

// ProfileWatcher streams profile changes made by any process.
type ProfileWatcher interface {
	// Watch calls onChange after each change to the stored profile.
	// A removed profile is reported as the guest profile.
	// Blocks until ctx is cancelled.
	Watch(ctx context.Context, onChange func(domain.UserProfile)) error
}
