package driven

import (
	"context"

	"github.com/spatialshot/spatialshot/internal/core/domain"
)

// IdentityProvider performs the provider side of the authorization-code flow.
// Each implementation is bound to one OAuth client registration.
type IdentityProvider interface {
	// Config returns the client registration the provider was built from.
	Config() domain.OAuthProviderConfig

	// AuthCodeURL builds the browser authorization URL.
	// It carries client_id, redirect_uri, response_type=code, scope,
	// access_type=offline and prompt=consent.
	AuthCodeURL() string

	// ExchangeCode trades an authorization code for an access token.
	// Errors wrap domain.ErrTokenExchange.
	ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error)

	// FetchProfile reads the account's profile with a bearer token.
	// Errors wrap domain.ErrProfileFetch.
	FetchProfile(ctx context.Context, token *domain.OAuthToken) (domain.ProviderProfile, error)
}
