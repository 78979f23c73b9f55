// Package cache stores fit results and rendered layouts between CLI runs.
//
// Values are opaque bytes behind the [Cache] interface. [FileCache] keeps
// one JSON envelope per key on disk; [NullCache] disables caching. Keys come
// from a [Keyer] so every input that changes a result also changes its key.
package cache

import (
	"context"
	"time"
)

// Cache stores byte values by key.
type Cache interface {
	// Get returns the value for key and whether it was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
