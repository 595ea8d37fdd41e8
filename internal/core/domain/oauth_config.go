package domain

import (
	"fmt"
	"net/url"
)

// Compiled-in redirect and profile endpoints.
// Changing DefaultRedirectURI requires registering the new value with the provider.
const (
	DefaultRedirectURI      = "http://localhost:3456"
	DefaultUserInfoEndpoint = "https://people.googleapis.com/"
)

// ProfilePersonFields selects the profile fields read from the People API.
const ProfilePersonFields = "names,emailAddresses,photos"

// DefaultScopes are requested on every authorization.
var DefaultScopes = []string{"profile", "email"}

// OAuthProviderConfig is the OAuth client registration used by the login flow.
// It is read-only after load.
type OAuthProviderConfig struct {
	ClientID              string
	ClientSecret          string
	AuthorizationEndpoint string
	TokenEndpoint         string
	RedirectURI           string
	// UserInfoEndpoint is the base URL of the People API.
	UserInfoEndpoint string
	Scopes           []string
}

// Validate checks that every endpoint and credential is present.
func (c OAuthProviderConfig) Validate() error {
	switch {
	case c.ClientID == "":
		return fmt.Errorf("%w: missing client_id", ErrProviderConfig)
	case c.ClientSecret == "":
		return fmt.Errorf("%w: missing client_secret", ErrProviderConfig)
	case c.AuthorizationEndpoint == "":
		return fmt.Errorf("%w: missing authorization endpoint", ErrProviderConfig)
	case c.TokenEndpoint == "":
		return fmt.Errorf("%w: missing token endpoint", ErrProviderConfig)
	case c.UserInfoEndpoint == "":
		return fmt.Errorf("%w: missing user info endpoint", ErrProviderConfig)
	}
	if _, err := c.CallbackAddr(); err != nil {
		return err
	}
	return nil
}

// CallbackAddr returns the loopback host:port the redirect URI points at.
// The listener binds 127.0.0.1 regardless of whether the URI names localhost.
func (c OAuthProviderConfig) CallbackAddr() (string, error) {
	u, err := url.Parse(c.RedirectURI)
	if err != nil {
		return "", fmt.Errorf("%w: redirect uri: %v", ErrProviderConfig, err)
	}
	if u.Scheme != "http" {
		return "", fmt.Errorf("%w: redirect uri must use http, got %q", ErrProviderConfig, u.Scheme)
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1":
	default:
		return "", fmt.Errorf("%w: redirect uri must be a loopback address, got %q", ErrProviderConfig, u.Hostname())
	}
	if u.Port() == "" {
		return "", fmt.Errorf("%w: redirect uri has no port", ErrProviderConfig)
	}
	return "127.0.0.1:" + u.Port(), nil
}
