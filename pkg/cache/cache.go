// Package cache stores computed layouts and rendered artifacts.
//
// Three backends implement [Cache]: [NullCache] (disabled), [FileCache] for
// the CLI, and [RedisCache] for the API server. Keys come from a [Keyer] so
// that every component derives them the same way.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLRoster   = 10 * time.Minute
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
