// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The vault (passphrase, KDF, AES-256-GCM sealing) and the login
// orchestrator live here; HTTP, files and the browser sit behind ports.
package services
