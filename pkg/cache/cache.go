// Package cache stores the results of expensive view operations, such as
// decoded-and-selected trees and rendered diagrams, keyed by the content
// hash of their input.
//
// Three backends share the [Cache] interface: [NullCache] disables caching,
// [FileCache] keeps entries under a local directory for CLI use and
// [RedisCache] shares them between processes. Keys come from a [Keyer] so
// that callers never format cache keys by hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (false, nil error), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
