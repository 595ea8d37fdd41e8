package driven

import (
	"context"

	"github.com/spatialshot/spatialshot/internal/core/domain"
)

// CallbackHandler processes an authorization code delivered to the redirect URI.
// The returned result decides which page the browser is shown.
type CallbackHandler func(ctx context.Context, code string) domain.AuthResult

// CallbackReceiver binds the loopback redirect address.
type CallbackReceiver interface {
	// Listen binds addr. Binding failure wraps domain.ErrCallbackBind and is
	// never retried on another port.
	Listen(addr string) (CallbackListener, error)
}

// CallbackListener is a bound, single-use redirect endpoint.
type CallbackListener interface {
	// Serve answers redirect requests one at a time until a request with or
	// without a code has been answered, or ctx ends. Favicon requests are
	// answered with 404 and do not end the wait. Requests that arrive after
	// the attempt ended are refused until Close.
	Serve(ctx context.Context, handle CallbackHandler) domain.AuthResult

	// Close releases the listener. Safe to call more than once.
	Close() error
}

// BrowserOpener launches the system's default browser.
type BrowserOpener interface {
	Open(url string) error
}
