// Package cache stores arrangement results between runs.
//
// Overlap resolution is the one expensive step of a pipeline run, and its
// output depends only on the input graph and a handful of options. The
// pipeline therefore caches resolved positions under a key derived from a
// hash of the graph snapshot and those options.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, used by the CLI
//   - [RedisCache]: shared cache for several machines
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] turns a graph hash and options into a cache key. Wrap it in a
// [ScopedKeyer] to give separate projects separate namespaces:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "project:atlas:")
//	key := keyer.ArrangeKey(cache.Hash(data), cache.ArrangeKeyOpts{Step: "declutter"})
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLArrangement is how long resolved positions stay valid.
	TTLArrangement = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
