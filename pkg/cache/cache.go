// Package cache provides byte-level caching for rendered artifacts.
//
// Rendering a graph to SVG, PDF, or PNG is deterministic in the DOT source
// and the output options, so repeated renders of the same graph can be
// served from disk. Keys are content hashes; entries optionally expire.
//
// [FileCache] stores entries under a directory (one file per entry) and
// [NullCache] disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}

// RenderKey builds the cache key for a rendered artifact: the hash of the
// DOT source plus everything that changes the output bytes.
func RenderKey(dotHash, format string, scale float64, detailed bool) string {
	return hashKey("render", dotHash, format, scale, detailed)
}
