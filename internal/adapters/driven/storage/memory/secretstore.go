package memory

import (
	"slices"
	"sync"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
)

// Ensure SecretStore implements the interface.
var _ driven.SecretStore = (*SecretStore)(nil)

// SecretStore is an in-memory implementation of driven.SecretStore for testing.
type SecretStore struct {
	mu       sync.RWMutex
	payloads map[string]domain.EncryptedSecretPayload
}

// NewSecretStore creates a new in-memory secret store.
func NewSecretStore() *SecretStore {
	return &SecretStore{
		payloads: make(map[string]domain.EncryptedSecretPayload),
	}
}

// Write stores a copy of the payload.
func (s *SecretStore) Write(provider string, payload domain.EncryptedSecretPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads[provider] = clonePayload(payload)
	return nil
}

// Read returns a copy of the stored payload.
func (s *SecretStore) Read(provider string) (*domain.EncryptedSecretPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.payloads[provider]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := clonePayload(payload)
	return &cp, nil
}

// Delete removes a payload.
func (s *SecretStore) Delete(provider string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.payloads, provider)
	return nil
}

// List returns stored providers sorted by name.
func (s *SecretStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	providers := make([]string, 0, len(s.payloads))
	for provider := range s.payloads {
		providers = append(providers, provider)
	}
	slices.Sort(providers)
	return providers, nil
}

// Path returns a pseudo path for the provider.
func (s *SecretStore) Path(provider string) string {
	return ":memory:/" + domain.SecretFileName(provider)
}

func clonePayload(p domain.EncryptedSecretPayload) domain.EncryptedSecretPayload {
	return domain.EncryptedSecretPayload{
		Version:    p.Version,
		Algorithm:  p.Algorithm,
		Salt:       slices.Clone(p.Salt),
		Nonce:      slices.Clone(p.Nonce),
		Tag:        slices.Clone(p.Tag),
		Ciphertext: slices.Clone(p.Ciphertext),
	}
}
