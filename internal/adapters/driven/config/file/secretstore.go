package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
)

// Ensure SecretStore implements the interface.
var _ driven.SecretStore = (*SecretStore)(nil)

// SecretStore keeps one sealed payload per provider in <provider>_key.json.
// Provider names are validated by the caller; this store only maps them to paths.
type SecretStore struct {
	dir string
}

// NewSecretStore creates a secret store rooted at configDir.
func NewSecretStore(configDir string) *SecretStore {
	return &SecretStore{dir: configDir}
}

// Write stores the payload atomically, replacing any existing file.
func (s *SecretStore) Write(provider string, payload domain.EncryptedSecretPayload) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.Path(provider), data)
}

// Read loads a provider's payload.
// Returns domain.ErrNotFound if the key file does not exist.
func (s *SecretStore) Read(provider string) (*domain.EncryptedSecretPayload, error) {
	data, err := os.ReadFile(s.Path(provider))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var payload domain.EncryptedSecretPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse %s: %w", domain.SecretFileName(provider), err)
	}
	return &payload, nil
}

// Delete removes a provider's key file if present.
func (s *SecretStore) Delete(provider string) error {
	return removeIfExists(s.Path(provider))
}

// List returns providers with a key file, sorted by name.
// A missing config directory means no providers.
func (s *SecretStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var providers []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if provider, ok := domain.ProviderFromFileName(entry.Name()); ok {
			providers = append(providers, provider)
		}
	}
	slices.Sort(providers)
	return providers, nil
}

// Path returns the key file path for a provider.
func (s *SecretStore) Path(provider string) string {
	return filepath.Join(s.dir, domain.SecretFileName(provider))
}
