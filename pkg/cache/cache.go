// Package cache provides byte-level caching for rendered word-cloud
// artifacts.
//
// Rendering a 6000x6000 cloud is the only expensive operation in the tool,
// and a seeded run is fully deterministic, so rendered PNGs are cached keyed
// by a hash of (configuration, seed, variation index, format). Backends:
//   - FileCache: sha256-sharded JSON entries under ~/.cache/nubegen
//   - RedisCache: go-redis backed, for users who point several machines at
//     one cache
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is the interface all backends implement.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts identify one rendered artifact.
type ArtifactKeyOpts struct {
	Seed   uint64
	Index  int
	Format string
}

// ArtifactKey generates the cache key for a rendered variation. configHash
// is the sha256 of the configuration's JSON wire form.
func ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configHash, opts)
}
