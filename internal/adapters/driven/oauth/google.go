package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
)

// Ensure GoogleProvider implements the interface.
var _ driven.IdentityProvider = (*GoogleProvider)(nil)

// DefaultHTTPTimeout bounds each token and profile request.
const DefaultHTTPTimeout = 30 * time.Second

// GoogleProvider exchanges codes with Google and reads the People API profile.
type GoogleProvider struct {
	cfg        domain.OAuthProviderConfig
	oauth      *oauth2.Config
	httpClient *http.Client
}

// Option configures a GoogleProvider.
type Option func(*GoogleProvider)

// WithHTTPClient sets the client used for token and profile requests.
func WithHTTPClient(client *http.Client) Option {
	return func(p *GoogleProvider) {
		p.httpClient = client
	}
}

// NewGoogleProvider creates a provider for a validated client registration.
func NewGoogleProvider(cfg domain.OAuthProviderConfig, opts ...Option) (*GoogleProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = domain.DefaultScopes
	}

	p := &GoogleProvider{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthorizationEndpoint,
				TokenURL: cfg.TokenEndpoint,
				// Credentials travel in the form body alongside the code.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the client registration.
func (p *GoogleProvider) Config() domain.OAuthProviderConfig {
	return p.cfg
}

// AuthCodeURL builds the consent URL. access_type=offline and
// prompt=consent make Google issue a refresh token on every login.
func (p *GoogleProvider) AuthCodeURL() string {
	return p.oauth.AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// ExchangeCode trades the authorization code for tokens.
func (p *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error) {
	tok, err := p.oauth.Exchange(p.clientContext(ctx), code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			if rerr.ErrorCode != "" {
				return nil, fmt.Errorf("%w: %s", domain.ErrTokenExchange, rerr.ErrorCode)
			}
			if rerr.Response != nil {
				return nil, fmt.Errorf("%w: status %d", domain.ErrTokenExchange, rerr.Response.StatusCode)
			}
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenExchange, err)
	}

	return &domain.OAuthToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.Type(),
		Expiry:       tok.Expiry,
	}, nil
}

// FetchProfile reads names, email addresses and photos for people/me.
// Only the first entry of each list is used.
func (p *GoogleProvider) FetchProfile(ctx context.Context, token *domain.OAuthToken) (domain.ProviderProfile, error) {
	if token == nil || token.AccessToken == "" {
		return domain.ProviderProfile{}, fmt.Errorf("%w: no access token", domain.ErrProfileFetch)
	}

	ctx = p.clientContext(ctx)
	client := p.oauth.Client(ctx, &oauth2.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
	})

	svc, err := people.NewService(ctx,
		option.WithHTTPClient(client),
		option.WithEndpoint(p.cfg.UserInfoEndpoint),
	)
	if err != nil {
		return domain.ProviderProfile{}, fmt.Errorf("%w: %v", domain.ErrProfileFetch, err)
	}

	person, err := svc.People.Get("people/me").
		PersonFields(domain.ProfilePersonFields).
		Context(ctx).
		Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return domain.ProviderProfile{}, fmt.Errorf("%w: status %d", domain.ErrProfileFetch, gerr.Code)
		}
		return domain.ProviderProfile{}, fmt.Errorf("%w: %v", domain.ErrProfileFetch, err)
	}

	return profileFromPerson(person), nil
}

func (p *GoogleProvider) clientContext(ctx context.Context) context.Context {
	if p.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

func profileFromPerson(person *people.Person) domain.ProviderProfile {
	var profile domain.ProviderProfile
	if person == nil {
		return profile
	}
	if len(person.Names) > 0 && person.Names[0] != nil {
		profile.DisplayName = person.Names[0].DisplayName
	}
	if len(person.EmailAddresses) > 0 && person.EmailAddresses[0] != nil {
		profile.Email = person.EmailAddresses[0].Value
	}
	if len(person.Photos) > 0 && person.Photos[0] != nil {
		profile.PhotoURL = person.Photos[0].Url
	}
	return profile
}

// NewProviderLoader returns a loader that builds a GoogleProvider from
// credentialsFile, or from the bundled registration when the path is empty.
func NewProviderLoader(credentialsFile string, opts ...Option) func() (driven.IdentityProvider, error) {
	return func() (driven.IdentityProvider, error) {
		var (
			cfg domain.OAuthProviderConfig
			err error
		)
		if credentialsFile != "" {
			cfg, err = LoadConfigFile(credentialsFile)
		} else {
			cfg, err = LoadBundledConfig()
		}
		if err != nil {
			return nil, err
		}
		provider, err := NewGoogleProvider(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return provider, nil
	}
}
