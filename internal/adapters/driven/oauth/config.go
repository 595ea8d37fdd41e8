// Package oauth implements the identity provider side of the login flow
// against Google's OAuth 2.0 and People APIs.
package oauth

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"

	"github.com/spatialshot/spatialshot/internal/core/domain"
)

//go:embed data/credentials.json
var bundledCredentials []byte

// client registration variants in a Google client JSON file.
const (
	variantWeb       = "web"
	variantInstalled = "installed"
)

// LoadBundledConfig parses the client registration compiled into the binary.
func LoadBundledConfig() (domain.OAuthProviderConfig, error) {
	return LoadProviderConfig(bundledCredentials)
}

// LoadConfigFile parses a client registration from disk.
func LoadConfigFile(path string) (domain.OAuthProviderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.OAuthProviderConfig{}, fmt.Errorf("%w: %v", domain.ErrProviderConfig, err)
	}
	return LoadProviderConfig(data)
}

// LoadProviderConfig parses a Google client JSON blob. Exactly one of the
// "web" and "installed" variants must be present. The redirect URI and
// profile endpoint are fixed and override whatever the blob declares.
func LoadProviderConfig(blob []byte) (domain.OAuthProviderConfig, error) {
	var variants map[string]map[string]any
	if err := json.Unmarshal(blob, &variants); err != nil {
		return domain.OAuthProviderConfig{}, fmt.Errorf("%w: parse client json: %v", domain.ErrProviderConfig, err)
	}

	web, hasWeb := variants[variantWeb]
	installed, hasInstalled := variants[variantInstalled]
	var section map[string]any
	switch {
	case hasWeb && hasInstalled:
		return domain.OAuthProviderConfig{}, fmt.Errorf("%w: client json has both %q and %q sections",
			domain.ErrProviderConfig, variantWeb, variantInstalled)
	case hasWeb:
		section = web
	case hasInstalled:
		section = installed
	default:
		return domain.OAuthProviderConfig{}, fmt.Errorf("%w: client json has neither %q nor %q section",
			domain.ErrProviderConfig, variantWeb, variantInstalled)
	}
	if section == nil {
		return domain.OAuthProviderConfig{}, fmt.Errorf("%w: empty client section", domain.ErrProviderConfig)
	}

	// ConfigFromJSON insists on redirect_uris; the loopback address is fixed anyway.
	if _, ok := section["redirect_uris"]; !ok {
		section["redirect_uris"] = []string{domain.DefaultRedirectURI}
	}
	normalized, err := json.Marshal(variants)
	if err != nil {
		return domain.OAuthProviderConfig{}, fmt.Errorf("%w: %v", domain.ErrProviderConfig, err)
	}

	conf, err := google.ConfigFromJSON(normalized, domain.DefaultScopes...)
	if err != nil {
		return domain.OAuthProviderConfig{}, fmt.Errorf("%w: %v", domain.ErrProviderConfig, err)
	}

	cfg := domain.OAuthProviderConfig{
		ClientID:              conf.ClientID,
		ClientSecret:          conf.ClientSecret,
		AuthorizationEndpoint: conf.Endpoint.AuthURL,
		TokenEndpoint:         conf.Endpoint.TokenURL,
		RedirectURI:           domain.DefaultRedirectURI,
		UserInfoEndpoint:      domain.DefaultUserInfoEndpoint,
		Scopes:                conf.Scopes,
	}
	if err := cfg.Validate(); err != nil {
		return domain.OAuthProviderConfig{}, err
	}
	return cfg, nil
}
