package driving

// VaultService stores provider API secrets encrypted at rest.
type VaultService interface {
	// Save encrypts plaintext for provider and returns the key file path.
	Save(plaintext, provider string) (string, error)

	// Get decrypts the provider's secret. The boolean is false when the secret
	// is absent, corrupt, tampered with, or sealed on another machine.
	Get(provider string) (string, bool)

	// Delete removes one provider's secret.
	Delete(provider string) error

	// List returns providers with a stored secret.
	List() ([]string, error)

	// Reset deletes every provider secret and the stored profile.
	Reset() error
}
