package driven

import "github.com/spatialshot/spatialshot/internal/core/domain"

// SecretStore persists sealed provider secrets, one payload per provider.
// Implementations never see plaintext.
type SecretStore interface {
	// Write stores the payload for a provider, replacing any existing one.
	Write(provider string, payload domain.EncryptedSecretPayload) error

	// Read loads the payload for a provider.
	// Returns domain.ErrNotFound if the provider has no key file.
	Read(provider string) (*domain.EncryptedSecretPayload, error)

	// Delete removes a provider's payload. Deleting a missing payload is not an error.
	Delete(provider string) error

	// List returns the providers that have a stored payload, sorted by name.
	List() ([]string, error)

	// Path returns where a provider's payload is stored.
	Path(provider string) string
}
