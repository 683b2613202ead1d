// Package cache stores rendered plot artifacts.
//
// Rendering a script means starting the external plotting engine, which is
// far slower than compiling it. The pipeline therefore keys rendered output by
// a hash of the compiled script and the terminal it targets, and consults a
// [Cache] before invoking the engine.
//
// Three backends are provided:
//   - [FileCache]: one JSON file per entry under a directory (CLI)
//   - [RedisCache]: a shared Redis instance (HTTP API)
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cached entries.
const (
	// TTLArtifact is how long rendered output stays valid. Scripts are
	// content-addressed, so entries only expire to bound disk usage.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLScript is how long a compiled script stays cached by the API.
	TTLScript = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// NullCache disables caching: Set discards and Get always misses.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
