package domain

import "time"

// AuthFlowState tracks whether a login attempt is in flight.
type AuthFlowState int32

// Login attempt states.
const (
	// AuthNotRunning means no login attempt owns the callback port.
	AuthNotRunning AuthFlowState = iota
	// AuthRunning means a login attempt is in progress.
	AuthRunning
)

// String returns the string representation.
func (s AuthFlowState) String() string {
	switch s {
	case AuthNotRunning:
		return "not_running"
	case AuthRunning:
		return "running"
	default:
		return unknownDescription
	}
}

// AuthOutcome describes how a login attempt ended.
type AuthOutcome string

// Login attempt outcomes.
const (
	// AuthSucceeded means a profile was fetched and persisted.
	AuthSucceeded AuthOutcome = "succeeded"
	// AuthDenied means the callback carried no authorization code.
	AuthDenied AuthOutcome = "denied"
	// AuthFailed means the code exchange or profile fetch failed.
	AuthFailed AuthOutcome = "failed"
	// AuthAbandoned means no callback arrived before the attempt was cancelled or timed out.
	AuthAbandoned AuthOutcome = "abandoned"
)

// String returns the string representation.
func (o AuthOutcome) String() string {
	return string(o)
}

// Description returns a human-readable description of the outcome.
func (o AuthOutcome) Description() string {
	switch o {
	case AuthSucceeded:
		return "Signed in"
	case AuthDenied:
		return "Sign-in was cancelled in the browser"
	case AuthFailed:
		return "Sign-in failed"
	case AuthAbandoned:
		return "Sign-in timed out waiting for the browser"
	default:
		return unknownDescription
	}
}

// AuthResult is the terminal state of one login attempt.
type AuthResult struct {
	// AttemptID identifies the attempt in logs and UI events.
	AttemptID string
	// Outcome is how the attempt ended.
	Outcome AuthOutcome
	// Profile is set only when Outcome is AuthSucceeded.
	Profile *UserProfile
	// Err holds the protocol failure for AuthFailed and AuthAbandoned.
	Err error
}

// OK returns true if the attempt produced a signed-in profile.
func (r AuthResult) OK() bool {
	return r.Outcome == AuthSucceeded && r.Profile != nil
}

// OAuthToken represents the token endpoint response.
type OAuthToken struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is returned because of access_type=offline. It is not persisted.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// Expiry is when the access token expires.
	Expiry time.Time `json:"expiry,omitempty"`
}

// IsExpired returns true if the token has expired.
func (t *OAuthToken) IsExpired() bool {
	if t.Expiry.IsZero() {
		return false
	}
	return time.Now().After(t.Expiry)
}
