package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
)

type serveOutcome struct {
	result domain.AuthResult
}

// startServer binds an ephemeral port and runs Serve in the background.
func startServer(t *testing.T, ctx context.Context, handle driven.CallbackHandler) (string, <-chan serveOutcome) {
	t.Helper()

	listener, err := NewLoopbackReceiver().Listen("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	server, ok := listener.(*CallbackServer)
	require.True(t, ok)

	done := make(chan serveOutcome, 1)
	go func() {
		done <- serveOutcome{result: listener.Serve(ctx, handle)}
	}()

	return "http://" + server.Addr(), done
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func wait(t *testing.T, done <-chan serveOutcome) domain.AuthResult {
	t.Helper()
	select {
	case out := <-done:
		return out.result
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
		return domain.AuthResult{}
	}
}

func succeed(_ context.Context, _ string) domain.AuthResult {
	return domain.AuthResult{Outcome: domain.AuthSucceeded, Profile: &domain.UserProfile{Name: "Ada"}}
}

func TestCallbackServer_Success(t *testing.T) {
	var gotCode string
	base, done := startServer(t, context.Background(), func(ctx context.Context, code string) domain.AuthResult {
		gotCode = code
		return succeed(ctx, code)
	})

	resp, body := get(t, base+"/?code=4%2F0abc&scope=email")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Contains(t, body, "Authentication Successful")
	assert.Contains(t, body, "Spatialshot is now connected to your Google Account.")
	assert.Contains(t, body, "--title-color: #202124")
	assert.NotContains(t, body, "${")

	result := wait(t, done)
	assert.Equal(t, domain.AuthSucceeded, result.Outcome)
	assert.Equal(t, "4/0abc", gotCode)
}

func TestCallbackServer_FaviconDoesNotEndAttempt(t *testing.T) {
	var calls atomic.Int32
	base, done := startServer(t, context.Background(), func(ctx context.Context, code string) domain.AuthResult {
		calls.Add(1)
		return succeed(ctx, code)
	})

	resp, _ := get(t, base+"/favicon.ico")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	select {
	case <-done:
		t.Fatal("favicon request ended the attempt")
	case <-time.After(50 * time.Millisecond):
	}

	resp, _ = get(t, base+"/?code=abc")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.AuthSucceeded, wait(t, done).Outcome)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCallbackServer_NoCodeIsDenied(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"bare path", "/", false},
		{"unrelated query", "/somewhere?foo=bar", false},
		{"provider denial", "/?error=access_denied", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			base, done := startServer(t, context.Background(), func(ctx context.Context, code string) domain.AuthResult {
				calls.Add(1)
				return succeed(ctx, code)
			})

			resp, body := get(t, base+tt.path)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, "Authentication Failed")
			assert.Contains(t, body, "No code found.")
			assert.Contains(t, body, "--title-color: #d93025")

			result := wait(t, done)
			assert.Equal(t, domain.AuthDenied, result.Outcome)
			assert.Equal(t, tt.wantErr, result.Err != nil)
			assert.Zero(t, calls.Load(), "handler must not run without a code")
		})
	}
}

func TestCallbackServer_FailurePages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"exchange", fmt.Errorf("%w: invalid_grant", domain.ErrTokenExchange), "Google refused the code exchange."},
		{"profile", fmt.Errorf("%w: status 401", domain.ErrProfileFetch), "Google did not return your profile."},
		{"save", errors.New("disk full"), "Spatialshot could not save your profile."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, done := startServer(t, context.Background(), func(context.Context, string) domain.AuthResult {
				return domain.AuthResult{Outcome: domain.AuthFailed, Err: tt.err}
			})

			_, body := get(t, base+"/?code=abc")

			assert.Contains(t, body, "Authentication Failed")
			assert.Contains(t, body, tt.want)
			assert.Contains(t, body, "Spatialshot / Error")

			result := wait(t, done)
			assert.Equal(t, domain.AuthFailed, result.Outcome)
			assert.ErrorIs(t, result.Err, tt.err)
		})
	}
}

func TestCallbackServer_HandlerPanicEndsAttempt(t *testing.T) {
	var calls atomic.Int32
	base, done := startServer(t, context.Background(), func(context.Context, string) domain.AuthResult {
		calls.Add(1)
		panic("store exploded")
	})

	resp, body := get(t, base+"/?code=first")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Authentication Failed")

	result := wait(t, done)
	assert.Equal(t, domain.AuthFailed, result.Outcome)
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "store exploded")

	// Only one code is ever processed.
	resp, _ = get(t, base+"/?code=second")
	assert.Equal(t, http.StatusGone, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCallbackServer_LateRequestIsGone(t *testing.T) {
	listener, err := NewLoopbackReceiver().Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	server := listener.(*CallbackServer)
	base := "http://" + server.Addr()

	done := make(chan domain.AuthResult, 1)
	go func() { done <- listener.Serve(context.Background(), succeed) }()

	_, _ = get(t, base+"/?code=first")
	require.Equal(t, domain.AuthSucceeded, (<-done).Outcome)

	// The server is still up until Close; a second redirect must not re-enter the flow.
	resp, _ := get(t, base+"/?code=second")
	assert.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestCallbackServer_TimeoutIsAbandoned(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	base, done := startServer(t, ctx, succeed)

	result := wait(t, done)
	assert.Equal(t, domain.AuthAbandoned, result.Outcome)
	assert.ErrorIs(t, result.Err, context.DeadlineExceeded)

	resp, _ := get(t, base+"/?code=late")
	assert.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestCallbackServer_InFlightResultWinsOverTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	entered := make(chan struct{})
	base, done := startServer(t, ctx, func(hctx context.Context, code string) domain.AuthResult {
		close(entered)
		<-hctx.Done()
		return domain.AuthResult{Outcome: domain.AuthFailed, Err: fmt.Errorf("%w: %v", domain.ErrTokenExchange, hctx.Err())}
	})

	go func() { _, _ = http.Get(base + "/?code=slow") }()
	<-entered
	cancel()

	result := wait(t, done)
	assert.Equal(t, domain.AuthFailed, result.Outcome)
	assert.ErrorIs(t, result.Err, domain.ErrTokenExchange)
}

func TestLoopbackReceiver_PortInUse(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()

	_, err = NewLoopbackReceiver().Listen(occupied.Addr().String())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCallbackBind))
}

func TestCallbackServer_CloseReleasesPort(t *testing.T) {
	listener, err := NewLoopbackReceiver().Listen("127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.(*CallbackServer).Addr()

	require.NoError(t, listener.Close())
	require.NoError(t, listener.Close(), "Close is idempotent")

	again, err := NewLoopbackReceiver().Listen(addr)
	require.NoError(t, err)
	_ = again.Close()
}
