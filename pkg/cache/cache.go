// Package cache stores enumeration results and rendered artifacts between
// runs.
//
// Enumerating covers is deterministic: the same presentation at the same
// degree always produces the same covers in the same order. Results can
// therefore be cached indefinitely; the TTLs below only bound disk and
// memory use.
//
// Backends:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// Keys are built by a [Keyer] from a content hash of the input and the
// options that affect the output.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as hit == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default entry lifetimes.
const (
	// TTLCovers is the lifetime of an enumeration result.
	TTLCovers = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of a rendered Schreier graph.
	TTLArtifact = 7 * 24 * time.Hour
)
