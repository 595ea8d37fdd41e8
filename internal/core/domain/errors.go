package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Authentication Errors.

	// ErrAuthInProgress indicates a login attempt is already running.
	// A second attempt is rejected without touching the network or filesystem.
	ErrAuthInProgress = errors.New("authentication already in progress")

	// ErrProviderConfig indicates the bundled OAuth client configuration is malformed.
	ErrProviderConfig = errors.New("invalid OAuth provider configuration")

	// ErrCallbackBind indicates the loopback redirect port could not be bound.
	ErrCallbackBind = errors.New("failed to start callback server")

	// ErrBrowserLaunch indicates the system browser could not be opened.
	ErrBrowserLaunch = errors.New("failed to open browser")

	// ErrTokenExchange indicates the provider refused or garbled the code exchange.
	ErrTokenExchange = errors.New("token exchange failed")

	// ErrProfileFetch indicates the provider profile could not be retrieved.
	ErrProfileFetch = errors.New("profile fetch failed")

	// Vault Errors.

	// ErrInvalidProvider indicates a secret provider name cannot be mapped to a key file.
	ErrInvalidProvider = errors.New("invalid secret provider name")
)
