package services

import (
	"fmt"
	"time"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
	"github.com/spatialshot/spatialshot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAuthTimeout         = "auth.timeout_seconds"
	keyAuthNamePlaceholder = "auth.name_placeholder"
	keyAuthCredentials     = "auth.credentials_file"
	keyLogVerbose          = "log.verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or out-of-range values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Auth: domain.AuthSettings{
			Timeout:         s.getTimeout(defaults.Auth.Timeout),
			NamePlaceholder: s.configStore.GetString(keyAuthNamePlaceholder),
			CredentialsFile: s.configStore.GetString(keyAuthCredentials),
		},
		Log: domain.LogSettings{
			Verbose: s.configStore.GetBool(keyLogVerbose),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyAuthTimeout, int(settings.Auth.Timeout/time.Second)); err != nil {
		return fmt.Errorf("save auth timeout: %w", err)
	}
	if err := s.configStore.Set(keyAuthNamePlaceholder, settings.Auth.NamePlaceholder); err != nil {
		return fmt.Errorf("save name placeholder: %w", err)
	}
	if err := s.configStore.Set(keyAuthCredentials, settings.Auth.CredentialsFile); err != nil {
		return fmt.Errorf("save credentials file: %w", err)
	}
	if err := s.configStore.Set(keyLogVerbose, settings.Log.Verbose); err != nil {
		return fmt.Errorf("save verbose: %w", err)
	}

	return nil
}

// SetAuthTimeout updates how long a login waits for the browser.
func (s *SettingsService) SetAuthTimeout(timeout time.Duration) error {
	return s.update(func(settings *domain.AppSettings) {
		settings.Auth.Timeout = timeout
	})
}

// SetNamePlaceholder updates the display-name placeholder policy.
func (s *SettingsService) SetNamePlaceholder(placeholder string) error {
	return s.update(func(settings *domain.AppSettings) {
		settings.Auth.NamePlaceholder = placeholder
	})
}

// SetCredentialsFile points the login flow at an OAuth client JSON file.
// An empty path restores the bundled configuration.
func (s *SettingsService) SetCredentialsFile(path string) error {
	return s.update(func(settings *domain.AppSettings) {
		settings.Auth.CredentialsFile = path
	})
}

// SetVerbose updates the default verbosity.
func (s *SettingsService) SetVerbose(verbose bool) error {
	return s.update(func(settings *domain.AppSettings) {
		settings.Log.Verbose = verbose
	})
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) update(mutate func(*domain.AppSettings)) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	mutate(settings)
	return s.Save(settings)
}

func (s *SettingsService) getTimeout(defaultVal time.Duration) time.Duration {
	seconds := s.configStore.GetInt(keyAuthTimeout)
	if seconds <= 0 {
		return defaultVal
	}
	timeout := time.Duration(seconds) * time.Second
	if timeout < domain.MinAuthTimeout || timeout > domain.MaxAuthTimeout {
		return defaultVal
	}
	return timeout
}
