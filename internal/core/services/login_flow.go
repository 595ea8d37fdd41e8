package services

import (
	"context"
	"fmt"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
	"github.com/spatialshot/spatialshot/internal/logger"
)

// LoginFlow turns an authorization code into a persisted profile:
// exchange, fetch profile, persist, notify. It runs inside the callback
// request so the browser page reflects the real outcome.
type LoginFlow struct {
	provider        driven.IdentityProvider
	profiles        driven.ProfileStore
	notifier        driven.Notifier
	namePlaceholder string
}

// NewLoginFlow creates a login flow. notifier may be nil.
func NewLoginFlow(
	provider driven.IdentityProvider,
	profiles driven.ProfileStore,
	notifier driven.Notifier,
	namePlaceholder string,
) *LoginFlow {
	return &LoginFlow{
		provider:        provider,
		profiles:        profiles,
		notifier:        notifier,
		namePlaceholder: namePlaceholder,
	}
}

// HandleCode implements driven.CallbackHandler.
func (f *LoginFlow) HandleCode(ctx context.Context, code string) domain.AuthResult {
	logger.Debug("Exchanging authorization code")
	token, err := f.provider.ExchangeCode(ctx, code)
	if err != nil {
		return failed(err)
	}

	logger.Debug("Fetching profile")
	raw, err := f.provider.FetchProfile(ctx, token)
	if err != nil {
		return failed(err)
	}

	profile := domain.NormalizeProfile(raw, f.namePlaceholder)
	if err := f.profiles.Save(profile); err != nil {
		return failed(fmt.Errorf("save profile: %w", err))
	}
	logger.Debug("Saved profile to %s", f.profiles.Path())

	if f.notifier != nil {
		f.notifier.AuthSucceeded(profile)
	}

	return domain.AuthResult{Outcome: domain.AuthSucceeded, Profile: &profile}
}

func failed(err error) domain.AuthResult {
	return domain.AuthResult{Outcome: domain.AuthFailed, Err: err}
}
