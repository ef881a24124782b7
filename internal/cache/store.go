package cache

import (
	"context"
	"time"
)

// Store is the backing key/value engine used by the content cache and the
// rate limiter. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key. The boolean reports whether a
	// live (non-expired) entry was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key. A non-positive ttl stores the entry
	// without an expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteMatching removes every key matching the glob pattern and
	// reports how many entries were removed.
	DeleteMatching(ctx context.Context, pattern string) (int64, error)

	// Clear removes every entry owned by this store.
	Clear(ctx context.Context) error

	// IncrementWithTTL atomically increments the counter stored under key,
	// setting ttl when the counter is created, and returns the new value.
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
