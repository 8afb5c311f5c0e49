// Package cache provides the artifact cache used by the render pipeline.
//
// Rendering the same inputs with the same options is deterministic, so
// artifacts are cached under a content hash of the input tables plus the
// render options. The file backend stores entries under the user cache
// directory; the null backend disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for artifact cache backends.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (zero means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
