// Package cache stores converted networks and rendered artifacts.
//
// Backends implement [Cache]:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entry files under a directory, for CLI use
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [MongoCache]: a MongoDB collection, for long-lived shared storage
//
// [Open] picks a backend from a URL, so the CLI and the server select one with
// a single flag or environment variable.
//
// Keys come from a [Keyer]. The default keyer hashes the ontology bytes
// together with every option that changes the result, so a changed terms file
// never serves a stale network.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	// NetworkTTL is how long a converted network is kept.
	NetworkTTL = 7 * 24 * time.Hour

	// ArtifactTTL is how long a rendered DOT/SVG/PNG artifact is kept.
	ArtifactTTL = 24 * time.Hour
)

// Cache is a byte store with expiration.
type Cache interface {
	// Get returns the stored value. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend connection.
	Close() error
}
