// Package cache defines the key-value cache contract shared by the session
// store, the intent cache and the catalog snapshot cache.
package cache

import (
	"context"
	"time"
)

// Client is a best-effort TTL key-value store.
type Client interface {
	// Get retrieves a value by key.
	// Returns nil (and no error) if the key does not exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL.
	// If ttl is 0, the driver default TTL is used.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Ping checks if the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}
