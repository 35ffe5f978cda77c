// Package keyring keeps secrets in the operating system keychain (or an
// encrypted file when no keychain is available)
package keyring

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/99designs/keyring"
	"github.com/chefaid/chefaid/internal/ports/outbound"
	"go.uber.org/zap"
)

// DefaultServiceName identifies the app's entries in the keychain
const DefaultServiceName = "chefaid"

// Config selects and configures the keyring backend
type Config struct {
	ServiceName string
	// Backends restricts which keyring backends may be used, e.g. "keychain",
	// "secret-service", "wincred", "file". Empty means platform default order.
	Backends     []string
	FileDir      string
	FilePassword string
}

// SecretStore implements outbound.KeyValueStore on a keyring
type SecretStore struct {
	ring   keyring.Keyring
	label  string
	logger *zap.Logger
}

var _ outbound.KeyValueStore = (*SecretStore)(nil)

// Open opens the configured keyring
func Open(cfg Config, logger *zap.Logger) (*SecretStore, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	backends := make([]keyring.BackendType, 0, len(cfg.Backends))
	for _, b := range cfg.Backends {
		backends = append(backends, keyring.BackendType(b))
	}

	ringConfig := keyring.Config{
		ServiceName:     cfg.ServiceName,
		AllowedBackends: backends,
	}
	if cfg.FileDir != "" {
		ringConfig.FileDir = filepath.Clean(cfg.FileDir)
		ringConfig.FilePasswordFunc = keyring.FixedStringPrompt(cfg.FilePassword)
	}

	ring, err := keyring.Open(ringConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return NewSecretStore(ring, cfg.ServiceName, logger), nil
}

// NewSecretStore wraps an opened keyring
func NewSecretStore(ring keyring.Keyring, label string, logger *zap.Logger) *SecretStore {
	return &SecretStore{
		ring:   ring,
		label:  label,
		logger: logger.Named("keyring"),
	}
}

// Get retrieves a secret by key
func (s *SecretStore) Get(_ context.Context, key string) (string, bool, error) {
	item, err := s.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get secret %s: %w", key, err)
	}
	return string(item.Data), true, nil
}

// Set stores a secret
func (s *SecretStore) Set(_ context.Context, key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: s.label + " " + key,
	})
	if err != nil {
		s.logger.Error("Failed to store secret", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("set secret %s: %w", key, err)
	}
	return nil
}

// Delete removes a secret; a missing key is not an error
func (s *SecretStore) Delete(_ context.Context, key string) error {
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("delete secret %s: %w", key, err)
	}
	return nil
}
