// Package oauth provides the loopback callback receiver and browser launcher
// used by the login flow.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
	"github.com/spatialshot/spatialshot/internal/logger"
)

// Ensure the receiver and server implement the ports.
var (
	_ driven.CallbackReceiver = (*LoopbackReceiver)(nil)
	_ driven.CallbackListener = (*CallbackServer)(nil)
)

// DefaultShutdownTimeout bounds how long Close waits for the final
// response to drain.
const DefaultShutdownTimeout = 5 * time.Second

// LoopbackReceiver binds callback servers on loopback addresses.
type LoopbackReceiver struct{}

// NewLoopbackReceiver creates a receiver.
func NewLoopbackReceiver() *LoopbackReceiver {
	return &LoopbackReceiver{}
}

// Listen binds addr. A bind failure wraps domain.ErrCallbackBind.
func (r *LoopbackReceiver) Listen(addr string) (driven.CallbackListener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w on %s: %v", domain.ErrCallbackBind, addr, err)
	}
	return newCallbackServer(listener), nil
}

// CallbackServer receives the provider redirect for one login attempt.
// Requests are handled one at a time; the first request that is not a
// favicon fetch ends the attempt.
type CallbackServer struct {
	listener net.Listener
	server   *http.Server

	// mu serializes requests and guards the fields below.
	mu       sync.Mutex
	ctx      context.Context
	handle   driven.CallbackHandler
	finished bool

	resultCh  chan domain.AuthResult
	closeOnce sync.Once
}

func newCallbackServer(listener net.Listener) *CallbackServer {
	s := &CallbackServer{
		listener: listener,
		resultCh: make(chan domain.AuthResult, 1),
	}
	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Addr returns the bound address.
func (s *CallbackServer) Addr() string {
	return s.listener.Addr().String()
}

// Serve accepts requests until one ends the attempt or ctx is done.
// Expiry of ctx yields domain.AuthAbandoned.
func (s *CallbackServer) Serve(ctx context.Context, handle driven.CallbackHandler) domain.AuthResult {
	s.mu.Lock()
	s.ctx = ctx
	s.handle = handle
	s.mu.Unlock()

	serveErr := make(chan error, 1)
	go func() {
		if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case result := <-s.resultCh:
		return result

	case err := <-serveErr:
		s.finish()
		return domain.AuthResult{Outcome: domain.AuthFailed, Err: fmt.Errorf("callback server: %w", err)}

	case <-ctx.Done():
		// Wait out an in-flight request; its result wins if it completed.
		s.finish()
		select {
		case result := <-s.resultCh:
			return result
		default:
		}
		return domain.AuthResult{Outcome: domain.AuthAbandoned, Err: ctx.Err()}
	}
}

// ServeHTTP implements http.Handler.
func (s *CallbackServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setSecurityHeaders(w)

	if isFaviconRequest(r) {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		http.Error(w, "This sign-in attempt has already finished.", http.StatusGone)
		return
	}

	query := r.URL.Query()
	code := query.Get("code")

	var result domain.AuthResult
	if code == "" {
		result = domain.AuthResult{Outcome: domain.AuthDenied}
		if reason := query.Get("error"); reason != "" {
			result.Err = fmt.Errorf("provider returned %q", reason)
		}
		logger.Debug("Callback without code")
	} else {
		logger.Debug("Callback with authorization code")
		result = s.safeHandle(code)
	}

	s.finished = true
	writePage(w, pageFor(result))
	s.resultCh <- result
}

// Close stops accepting requests and releases the port.
func (s *CallbackServer) Close() error {
	var err error
	s.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		err = s.server.Shutdown(ctx)
		// Shutdown only closes listeners Serve has seen.
		if cerr := s.listener.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
			err = cerr
		}
	})
	return err
}

// safeHandle runs the handler and turns a panic into a failed result,
// so the attempt still ends with a page.
func (s *CallbackServer) safeHandle(code string) (result domain.AuthResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Callback handler panicked: %v", r)
			result = domain.AuthResult{Outcome: domain.AuthFailed, Err: fmt.Errorf("callback handler panicked: %v", r)}
		}
	}()
	return s.handle(s.ctx, code)
}

func (s *CallbackServer) finish() {
	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()
}

func isFaviconRequest(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.URL.Path), "favicon")
}
