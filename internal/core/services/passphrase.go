package services

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/spatialshot/spatialshot/internal/logger"
)

// Overridden in tests.
var (
	userHomeDir = os.UserHomeDir
	fatal       = logger.Fatal
)

// MachinePassphrase derives the vault passphrase from the current user's
// home directory. It is re-derived on every call and never stored.
// An unresolvable home directory is fatal.
func MachinePassphrase() string {
	home, err := userHomeDir()
	if err != nil || home == "" {
		fatal("cannot resolve home directory for vault passphrase: %v", err)
		return ""
	}
	return PassphraseFromHome(home)
}

// PassphraseFromHome returns the lowercase hex SHA-256 of a home directory path.
func PassphraseFromHome(home string) string {
	sum := sha256.Sum256([]byte(home))
	return hex.EncodeToString(sum[:])
}
