// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ProfileStore: profile.json persistence
//   - SecretStore: <provider>_key.json persistence
//   - ConfigStore: Application settings
//   - IdentityProvider: OAuth code exchange and profile lookup
//   - CallbackReceiver: Loopback HTTP listener for the redirect
//   - BrowserOpener: Launches the system browser
//   - ProfileWatcher: Change feed for the stored profile
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Notifier: UI events. Without it, outcomes are only logged.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
