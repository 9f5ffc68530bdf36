// Package cache stores rendered artifacts keyed by a hash of their inputs.
//
// Three backends are provided:
//   - [FileCache] for the CLI, under the user's XDG cache directory
//   - [RedisCache] for a server fleet sharing one cache
//   - [MongoCache] for a server that keeps artifacts in MongoDB
//
// [NullCache] disables caching. Keys are produced by a [Keyer] so that
// callers never build key strings by hand.
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cached entries.
const (
	// TTLArtifact is how long a rendered document stays cached.
	TTLArtifact = 7 * 24 * time.Hour
	// TTLServerArtifact is shorter since server inputs rarely repeat.
	TTLServerArtifact = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored data and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
