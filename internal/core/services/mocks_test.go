package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
)

// recordingNotifier captures UI events.
type recordingNotifier struct {
	mu        sync.Mutex
	succeeded []domain.UserProfile
	finished  []domain.AuthResult
	closed    []string
}

func (n *recordingNotifier) AuthSucceeded(profile domain.UserProfile) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.succeeded = append(n.succeeded, profile)
}

func (n *recordingNotifier) AuthFinished(result domain.AuthResult) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.finished = append(n.finished, result)
}

func (n *recordingNotifier) CloseWindow(label string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = append(n.closed, label)
}

func (n *recordingNotifier) results() []domain.AuthResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.AuthResult(nil), n.finished...)
}

// fakeProvider is a scripted identity provider.
type fakeProvider struct {
	config   domain.OAuthProviderConfig
	token    *domain.OAuthToken
	exchErr  error
	profile  domain.ProviderProfile
	fetchErr error

	mu    sync.Mutex
	codes []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		config: domain.OAuthProviderConfig{
			ClientID:              "abc",
			ClientSecret:          "secret",
			AuthorizationEndpoint: "https://accounts.example/auth",
			TokenEndpoint:         "https://accounts.example/token",
			RedirectURI:           "http://localhost:3000",
			UserInfoEndpoint:      "https://people.example/me",
		},
		token:   &domain.OAuthToken{AccessToken: "access-token", TokenType: "Bearer"},
		profile: domain.ProviderProfile{DisplayName: "Ada Lovelace", Email: "ada@example.com", PhotoURL: "http://img.example/ada.png"},
	}
}

func (p *fakeProvider) Config() domain.OAuthProviderConfig { return p.config }

func (p *fakeProvider) AuthCodeURL() string { return p.config.AuthorizationEndpoint + "?client_id=abc" }

func (p *fakeProvider) ExchangeCode(_ context.Context, code string) (*domain.OAuthToken, error) {
	p.mu.Lock()
	p.codes = append(p.codes, code)
	p.mu.Unlock()
	if p.exchErr != nil {
		return nil, p.exchErr
	}
	return p.token, nil
}

func (p *fakeProvider) FetchProfile(_ context.Context, _ *domain.OAuthToken) (domain.ProviderProfile, error) {
	if p.fetchErr != nil {
		return domain.ProviderProfile{}, p.fetchErr
	}
	return p.profile, nil
}

// fakeReceiver hands out listeners whose Serve is scripted by the test.
type fakeReceiver struct {
	mu        sync.Mutex
	listenErr error
	addrs     []string
	listeners []*fakeListener
	serve     func(ctx context.Context, handle driven.CallbackHandler) domain.AuthResult
}

func (r *fakeReceiver) Listen(addr string) (driven.CallbackListener, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addrs = append(r.addrs, addr)
	if r.listenErr != nil {
		return nil, r.listenErr
	}
	l := &fakeListener{serve: r.serve}
	r.listeners = append(r.listeners, l)
	return l, nil
}

func (r *fakeReceiver) listenCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.addrs)
}

type fakeListener struct {
	serve  func(ctx context.Context, handle driven.CallbackHandler) domain.AuthResult
	closed atomic.Bool
}

func (l *fakeListener) Serve(ctx context.Context, handle driven.CallbackHandler) domain.AuthResult {
	return l.serve(ctx, handle)
}

func (l *fakeListener) Close() error {
	l.closed.Store(true)
	return nil
}

// callbackWith returns a Serve script that delivers one code.
func callbackWith(code string) func(context.Context, driven.CallbackHandler) domain.AuthResult {
	return func(ctx context.Context, handle driven.CallbackHandler) domain.AuthResult {
		return handle(ctx, code)
	}
}

// fakeBrowser records opened URLs.
type fakeBrowser struct {
	mu   sync.Mutex
	err  error
	urls []string
}

func (b *fakeBrowser) Open(url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.urls = append(b.urls, url)
	return b.err
}

func (b *fakeBrowser) opened() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.urls...)
}
