// Package cache provides pluggable result caching for solve runs.
//
// Three backends cover the deployment shapes: [FileCache] for the CLI
// (entries under the user cache directory), [RedisCache] for the API server
// (shared across processes), and [NullCache] when caching is disabled. Keys
// come from a [Keyer] so every backend sees the same naming scheme.
package cache

import (
	"context"
	"time"
)

// TTLs per entry kind. A solved route is a pure function of the grid text and
// facing, so route entries can live long; the default bounds anything else.
const (
	TTLRoute   = 30 * 24 * time.Hour
	TTLDefault = 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry TTLs.
// Implementations treat expired or corrupt entries as misses, not errors.
type Cache interface {
	// Get retrieves the value for key. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key for ttl. A ttl <= 0 stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RouteKeyOpts carries the solve parameters that change the answer and must
// therefore change the key.
type RouteKeyOpts struct {
	Facing string `json:"facing"`
}

// Keyer produces stable cache keys for solve results.
type Keyer interface {
	// RouteKey keys a solved route by the grid content hash and the solve
	// options that shaped it.
	RouteKey(gridHash string, opts RouteKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RouteKey generates a key of the form "route:<sha256>".
func (k *DefaultKeyer) RouteKey(gridHash string, opts RouteKeyOpts) string {
	return hashKey("route", gridHash, opts)
}
