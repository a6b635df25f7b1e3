// Package cache provides byte-level caching for compiled scenes, rendered
// artifacts and fetched datasets.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: never stores anything; used with --no-cache
//
// # Keys
//
// Keys are built by a [Keyer] so that every backend sees the same key space.
// Scene keys hash the normalized chart spec; artifact keys hash the scene
// together with the output format. [ScopedKeyer] prefixes every key, which
// keeps tenants or environments apart on a shared Redis.
//
// # Errors
//
// Get reports a miss as (nil, false, nil). Errors are reserved for backend
// failures; callers treat them as misses and carry on.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is
	// reported as ok=false with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default time-to-live per entry kind.
const (
	TTLScene    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLData     = time.Hour
	TTLHTTP     = 24 * time.Hour
)
