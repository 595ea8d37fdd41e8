package services

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/spatialshot/spatialshot/internal/core/domain"
)

// KDFIterations is the PBKDF2-HMAC-SHA256 work factor for vault keys.
const KDFIterations = 100_000

// DeriveKey stretches a passphrase and salt into a 256-bit AES key.
// It is pure and CPU-bound; callers on latency-sensitive paths should run it
// on their own goroutine.
func DeriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, KDFIterations, domain.SecretKeySize, sha256.New)
}
