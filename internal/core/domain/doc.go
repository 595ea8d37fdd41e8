// Package domain defines the core business entities for Spatialshot's
// credential subsystem.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - UserProfile: The signed-in account as persisted in profile.json
//   - EncryptedSecretPayload: A provider secret sealed with AES-256-GCM
//   - AuthFlowState: Whether a login attempt is in flight
//   - AuthResult: How a login attempt ended
//   - OAuthProviderConfig: The bundled OAuth client registration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
