// Package routed composes settings stores so that chosen keys live in a
// different backend, typically the API key in the OS keyring
package routed

import (
	"context"

	"github.com/chefaid/chefaid/internal/ports/outbound"
)

// Store sends routed keys to their own store and everything else to the fallback
type Store struct {
	fallback outbound.KeyValueStore
	routes   map[string]outbound.KeyValueStore
}

var _ outbound.KeyValueStore = (*Store)(nil)

// NewStore creates a router over fallback
func NewStore(fallback outbound.KeyValueStore) *Store {
	return &Store{
		fallback: fallback,
		routes:   make(map[string]outbound.KeyValueStore),
	}
}

// Route sends key to store
func (s *Store) Route(key string, store outbound.KeyValueStore) *Store {
	s.routes[key] = store
	return s
}

func (s *Store) storeFor(key string) outbound.KeyValueStore {
	if st, ok := s.routes[key]; ok {
		return st
	}
	return s.fallback
}

// Get reads from the store owning key
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	return s.storeFor(key).Get(ctx, key)
}

// Set writes to the store owning key
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.storeFor(key).Set(ctx, key, value)
}

// Delete removes key from the store owning it
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.storeFor(key).Delete(ctx, key)
}

// Ping checks the fallback store when it supports health checks
func (s *Store) Ping(ctx context.Context) error {
	if hc, ok := s.fallback.(outbound.HealthChecker); ok {
		return hc.Ping(ctx)
	}
	return nil
}
