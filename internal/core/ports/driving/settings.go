package driving

import (
	"time"

	"github.com/spatialshot/spatialshot/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetAuthTimeout updates how long a login waits for the browser.
	SetAuthTimeout(timeout time.Duration) error

	// SetNamePlaceholder updates the display-name placeholder policy.
	SetNamePlaceholder(placeholder string) error

	// SetCredentialsFile points the login flow at an OAuth client JSON file.
	SetCredentialsFile(path string) error

	// SetVerbose updates the default verbosity.
	SetVerbose(verbose bool) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
