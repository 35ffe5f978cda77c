// Package redis provides a Redis-backed settings store for deployments that
// share settings between several server instances
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/chefaid/chefaid/internal/ports/outbound"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultKeyPrefix namespaces every settings key
const DefaultKeyPrefix = "chefaid:settings:"

// Config holds Redis connection settings
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// KVStore implements outbound.KeyValueStore on Redis strings. Values never expire.
type KVStore struct {
	client goredis.UniversalClient
	prefix string
	logger *zap.Logger
}

var (
	_ outbound.KeyValueStore = (*KVStore)(nil)
	_ outbound.HealthChecker = (*KVStore)(nil)
)

// NewClient creates a go-redis client from config
func NewClient(cfg Config) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewKVStore wraps an existing client
func NewKVStore(client goredis.UniversalClient, prefix string, logger *zap.Logger) *KVStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &KVStore{
		client: client,
		prefix: prefix,
		logger: logger.Named("redis-settings"),
	}
}

// Get retrieves a value by key
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("Settings get failed", zap.String("key", key), zap.Error(err))
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a value without expiry
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		s.logger.Error("Settings set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// Delete removes a key
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		s.logger.Error("Settings delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity
func (s *KVStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client
func (s *KVStore) Close() error {
	return s.client.Close()
}
