package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
	"github.com/spatialshot/spatialshot/internal/core/ports/driving"
	"github.com/spatialshot/spatialshot/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// ProviderLoader returns the identity provider for a login attempt.
// Errors are setup failures and should wrap domain.ErrProviderConfig.
type ProviderLoader func() (driven.IdentityProvider, error)

// AuthService orchestrates login attempts. It owns the in-flight state:
// at most one attempt holds the callback port at a time.
type AuthService struct {
	state atomic.Int32

	profiles     driven.ProfileStore
	receiver     driven.CallbackReceiver
	browser      driven.BrowserOpener
	notifier     driven.Notifier
	loadProvider ProviderLoader
	settings     driving.SettingsService
}

// NewAuthService creates the login orchestrator.
// notifier and settings may be nil; nil settings means defaults.
func NewAuthService(
	profiles driven.ProfileStore,
	receiver driven.CallbackReceiver,
	browser driven.BrowserOpener,
	notifier driven.Notifier,
	loadProvider ProviderLoader,
	settings driving.SettingsService,
) *AuthService {
	return &AuthService{
		profiles:     profiles,
		receiver:     receiver,
		browser:      browser,
		notifier:     notifier,
		loadProvider: loadProvider,
		settings:     settings,
	}
}

// State reports whether a login attempt is in flight.
func (s *AuthService) State() domain.AuthFlowState {
	return domain.AuthFlowState(s.state.Load())
}

// StartAuth runs one login attempt on its own goroutine and waits for it.
// The in-flight state is cleared on every exit path, including panics.
func (s *AuthService) StartAuth(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(domain.AuthNotRunning), int32(domain.AuthRunning)) {
		return domain.ErrAuthInProgress
	}

	done := make(chan error, 1)
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Login flow panicked: %v", r)
				err = fmt.Errorf("login flow panicked: %v", r)
			}
			s.state.Store(int32(domain.AuthNotRunning))
			done <- err
		}()
		err = s.run(ctx)
	}()

	return <-done
}

func (s *AuthService) run(ctx context.Context) error {
	if s.profiles == nil || s.receiver == nil || s.browser == nil || s.loadProvider == nil {
		return errors.New("auth service not configured")
	}

	attemptID := uuid.NewString()
	settings := s.authSettings()
	logger.Section("Login " + attemptID)

	if err := s.profiles.EnsureDir(); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	provider, err := s.loadProvider()
	if err != nil {
		return err
	}

	addr, err := provider.Config().CallbackAddr()
	if err != nil {
		return err
	}

	listener, err := s.receiver.Listen(addr)
	if err != nil {
		return err
	}
	defer listener.Close()
	logger.Debug("Listening for redirect on %s", addr)

	if err := s.browser.Open(provider.AuthCodeURL()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBrowserLaunch, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, settings.Timeout)
	defer cancel()

	flow := NewLoginFlow(provider, s.profiles, s.notifier, settings.NamePlaceholder)
	result := listener.Serve(waitCtx, flow.HandleCode)
	result.AttemptID = attemptID

	if result.Err != nil {
		logger.Warn("Login %s %s: %v", attemptID, result.Outcome, result.Err)
	} else {
		logger.Info("Login %s %s", attemptID, result.Outcome)
	}

	if s.notifier != nil {
		s.notifier.AuthFinished(result)
	}
	return nil
}

func (s *AuthService) authSettings() domain.AuthSettings {
	defaults := domain.DefaultAppSettings().Auth
	if s.settings == nil {
		return defaults
	}
	settings, err := s.settings.Get()
	if err != nil {
		logger.Warn("Using default auth settings: %v", err)
		return defaults
	}
	return settings.Auth
}

// Logout deletes the stored profile. Secrets are left intact.
func (s *AuthService) Logout() error {
	if s.profiles == nil {
		return errors.New("profile store not configured")
	}
	return s.profiles.Delete()
}

// GetProfile returns the stored profile or the guest profile.
func (s *AuthService) GetProfile() domain.UserProfile {
	if s.profiles == nil {
		return domain.GuestProfile()
	}
	profile, err := s.profiles.Load()
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Unreadable profile: %v", err)
		}
		return domain.GuestProfile()
	}
	return *profile
}
