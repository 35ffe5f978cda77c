// Package memory provides an in-memory settings store
package memory

import (
	"context"
	"sync"

	"github.com/chefaid/chefaid/internal/ports/outbound"
)

// KVStore implements outbound.KeyValueStore in process memory. Values are
// lost when the process exits.
type KVStore struct {
	data  map[string]string
	mutex sync.RWMutex
}

var _ outbound.KeyValueStore = (*KVStore)(nil)

// NewKVStore creates an empty store
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

// Get retrieves a value by key
func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.data[key]
	return value, ok, nil
}

// Set stores a value, replacing any previous one
func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[key] = value
	return nil
}

// Delete removes a key
func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
	return nil
}

// Keys returns the number of stored keys
func (s *KVStore) Keys() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}
