// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - ProfileStore: profile.json persistence
//   - SecretStore: one sealed <provider>_key.json file per provider
//   - ProfileWatcher: fsnotify-based change feed for profile.json
package file
