package driven

import "github.com/spatialshot/spatialshot/internal/core/domain"

// Notifier delivers asynchronous events to the UI layer.
type Notifier interface {
	// AuthSucceeded is sent after a new profile has been persisted.
	AuthSucceeded(profile domain.UserProfile)

	// AuthFinished is sent once per login attempt, whatever the outcome.
	AuthFinished(result domain.AuthResult)

	// CloseWindow asks the UI to close a named window.
	CloseWindow(label string)
}
