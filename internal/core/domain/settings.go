package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Login timeout bounds.
const (
	DefaultAuthTimeout = 5 * time.Minute
	MinAuthTimeout     = 10 * time.Second
	MaxAuthTimeout     = time.Hour
)

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Auth AuthSettings `json:"auth"`
	Log  LogSettings  `json:"log"`
}

// AuthSettings controls the loopback login flow.
type AuthSettings struct {
	// Timeout bounds how long the callback listener waits for the browser.
	Timeout time.Duration `json:"timeout"`

	// NamePlaceholder replaces a missing display name. Empty keeps the name empty.
	NamePlaceholder string `json:"name_placeholder,omitempty"`

	// CredentialsFile overrides the bundled OAuth client JSON when set.
	CredentialsFile string `json:"credentials_file,omitempty"`
}

// LogSettings controls diagnostic output.
type LogSettings struct {
	// Verbose enables debug output by default.
	Verbose bool `json:"verbose"`
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Auth: AuthSettings{
			Timeout: DefaultAuthTimeout,
		},
	}
}

// Validate checks that settings are within supported bounds.
func (s AppSettings) Validate() error {
	if s.Auth.Timeout < MinAuthTimeout || s.Auth.Timeout > MaxAuthTimeout {
		return fmt.Errorf("%w: auth timeout must be between %s and %s, got %s",
			ErrInvalidInput, MinAuthTimeout, MaxAuthTimeout, s.Auth.Timeout)
	}
	return nil
}
