package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Sealed secret format constants.
// The tag is stored separately but is always appended after the ciphertext
// (ciphertext || tag) when opening, matching what the sealer produced.
const (
	SecretPayloadVersion = 1
	SecretAlgorithm      = "aes-256-gcm"
	SecretSaltSize       = 16
	SecretNonceSize      = 12
	SecretTagSize        = 16
	SecretKeySize        = 32
)

// Well-known secret providers.
const (
	ProviderGemini = "gemini"
	ProviderImgBB  = "imgbb"
)

// ImgBBSetupWindow is the UI window closed once an imgbb key is saved.
const ImgBBSetupWindow = "imgbb-setup"

const secretFileSuffix = "_key.json"

var providerNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// EncryptedSecretPayload is the on-disk form of one provider secret.
// Binary fields are base64 in JSON.
type EncryptedSecretPayload struct {
	Version    int    `json:"version"`
	Algorithm  string `json:"algorithm"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Tag        []byte `json:"authentication_tag"`
	Ciphertext []byte `json:"ciphertext"`
}

// Validate checks the payload header and field sizes before any key derivation.
func (p *EncryptedSecretPayload) Validate() error {
	switch {
	case p.Version != SecretPayloadVersion:
		return fmt.Errorf("%w: unsupported payload version %d", ErrInvalidInput, p.Version)
	case p.Algorithm != SecretAlgorithm:
		return fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidInput, p.Algorithm)
	case len(p.Salt) != SecretSaltSize:
		return fmt.Errorf("%w: salt must be %d bytes", ErrInvalidInput, SecretSaltSize)
	case len(p.Nonce) != SecretNonceSize:
		return fmt.Errorf("%w: nonce must be %d bytes", ErrInvalidInput, SecretNonceSize)
	case len(p.Tag) != SecretTagSize:
		return fmt.Errorf("%w: tag must be %d bytes", ErrInvalidInput, SecretTagSize)
	}
	return nil
}

// ValidateProviderName checks that a provider name maps to a single file in the config directory.
func ValidateProviderName(provider string) error {
	if !providerNamePattern.MatchString(provider) {
		return fmt.Errorf("%w: %q", ErrInvalidProvider, provider)
	}
	return nil
}

// SecretFileName returns the key file name for a provider, e.g. "gemini_key.json".
func SecretFileName(provider string) string {
	return provider + secretFileSuffix
}

// ProviderFromFileName reverses SecretFileName.
// Returns false for files that are not provider key files.
func ProviderFromFileName(name string) (string, bool) {
	provider, ok := strings.CutSuffix(name, secretFileSuffix)
	if !ok || ValidateProviderName(provider) != nil {
		return "", false
	}
	return provider, true
}
