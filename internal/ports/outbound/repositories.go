// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import "context"

// KeyValueStore persists string values under string keys.
// Each key is independent; Set overwrites the whole value.
type KeyValueStore interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// HealthChecker is implemented by stores that can report connectivity
type HealthChecker interface {
	Ping(ctx context.Context) error
}
