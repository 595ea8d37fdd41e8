package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
	"github.com/spatialshot/spatialshot/internal/core/ports/driving"
	"github.com/spatialshot/spatialshot/internal/logger"
)

// Ensure VaultService implements the interface.
var _ driving.VaultService = (*VaultService)(nil)

// VaultService seals provider secrets with AES-256-GCM under a key derived
// from the machine passphrase. Nothing is cached: every Get re-derives the key.
type VaultService struct {
	store      driven.SecretStore
	profiles   driven.ProfileStore
	notifier   driven.Notifier
	passphrase func() string
	random     io.Reader
}

// VaultOption configures a VaultService.
type VaultOption func(*VaultService)

// WithPassphraseSource replaces the machine passphrase.
func WithPassphraseSource(fn func() string) VaultOption {
	return func(s *VaultService) {
		s.passphrase = fn
	}
}

// WithRandom replaces the source of salts and nonces.
func WithRandom(r io.Reader) VaultOption {
	return func(s *VaultService) {
		s.random = r
	}
}

// NewVaultService creates a vault over a secret store.
// profiles and notifier may be nil.
func NewVaultService(
	store driven.SecretStore,
	profiles driven.ProfileStore,
	notifier driven.Notifier,
	opts ...VaultOption,
) *VaultService {
	s := &VaultService{
		store:      store,
		profiles:   profiles,
		notifier:   notifier,
		passphrase: MachinePassphrase,
		random:     rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save encrypts plaintext for provider and writes its key file.
func (s *VaultService) Save(plaintext, provider string) (string, error) {
	if s.store == nil {
		return "", errors.New("secret store not configured")
	}
	if err := domain.ValidateProviderName(provider); err != nil {
		return "", err
	}

	payload, err := seal(s.passphrase(), plaintext, s.random)
	if err != nil {
		return "", fmt.Errorf("seal %s secret: %w", provider, err)
	}
	if err := s.store.Write(provider, *payload); err != nil {
		return "", fmt.Errorf("save %s secret: %w", provider, err)
	}

	path := s.store.Path(provider)
	logger.Debug("Saved %s secret to %s", provider, path)

	if provider == domain.ProviderImgBB && s.notifier != nil {
		s.notifier.CloseWindow(domain.ImgBBSetupWindow)
	}
	return path, nil
}

// Get decrypts the provider's secret. Absent, corrupt, tampered and
// foreign-machine payloads all report false.
func (s *VaultService) Get(provider string) (string, bool) {
	if s.store == nil || domain.ValidateProviderName(provider) != nil {
		return "", false
	}

	payload, err := s.store.Read(provider)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Unreadable %s secret: %v", provider, err)
		}
		return "", false
	}

	plaintext, err := open(s.passphrase(), payload)
	if err != nil {
		logger.Debug("Could not open %s secret: %v", provider, err)
		return "", false
	}
	return plaintext, true
}

// Delete removes one provider's secret.
func (s *VaultService) Delete(provider string) error {
	if s.store == nil {
		return errors.New("secret store not configured")
	}
	if err := domain.ValidateProviderName(provider); err != nil {
		return err
	}
	return s.store.Delete(provider)
}

// List returns providers with a stored secret.
func (s *VaultService) List() ([]string, error) {
	if s.store == nil {
		return nil, errors.New("secret store not configured")
	}
	return s.store.List()
}

// Reset deletes every provider secret and the stored profile.
// It keeps going after individual failures and reports them together.
func (s *VaultService) Reset() error {
	providers, err := s.List()
	if err != nil {
		return fmt.Errorf("list secrets: %w", err)
	}

	var errs []error
	for _, provider := range providers {
		if err := s.store.Delete(provider); err != nil {
			errs = append(errs, fmt.Errorf("delete %s secret: %w", provider, err))
		}
	}
	if s.profiles != nil {
		if err := s.profiles.Delete(); err != nil {
			errs = append(errs, fmt.Errorf("delete profile: %w", err))
		}
	}

	logger.Debug("Reset %d secrets", len(providers))
	return errors.Join(errs...)
}

// seal encrypts plaintext under a fresh salt and nonce.
// The GCM output is split so the last 16 bytes become the tag.
func seal(passphrase, plaintext string, random io.Reader) (*domain.EncryptedSecretPayload, error) {
	salt := make([]byte, domain.SecretSaltSize)
	if _, err := io.ReadFull(random, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	nonce := make([]byte, domain.SecretNonceSize)
	if _, err := io.ReadFull(random, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	gcm, err := newGCM(DeriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	split := len(sealed) - domain.SecretTagSize

	return &domain.EncryptedSecretPayload{
		Version:    domain.SecretPayloadVersion,
		Algorithm:  domain.SecretAlgorithm,
		Salt:       salt,
		Nonce:      nonce,
		Tag:        sealed[split:],
		Ciphertext: sealed[:split],
	}, nil
}

// open authenticates and decrypts ciphertext || tag.
func open(passphrase string, payload *domain.EncryptedSecretPayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", err
	}

	gcm, err := newGCM(DeriveKey(passphrase, payload.Salt))
	if err != nil {
		return "", err
	}

	combined := make([]byte, 0, len(payload.Ciphertext)+len(payload.Tag))
	combined = append(combined, payload.Ciphertext...)
	combined = append(combined, payload.Tag...)

	plaintext, err := gcm.Open(nil, payload.Nonce, combined, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithTagSize(block, domain.SecretTagSize)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
