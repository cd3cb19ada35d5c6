// Package cache stores rendered graph output so repeated documentation runs
// do not have to lay out unchanged graphs again.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis server, for CI runners that share output
//   - [NullCache]: stores nothing
//
// All backends implement [Cache]. Entries carry an optional TTL; a zero TTL
// means the entry never expires.
//
// # Keys
//
// A [Keyer] derives cache keys. [DefaultKeyer] hashes the DOT source together
// with the renderer name, its detected version and the output format, so a
// Graphviz upgrade never serves stale images. [ScopedKeyer] prefixes keys
// with a namespace so several projects can share one Redis database.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered output is kept when the configuration
// does not say otherwise.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 stores the entry without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// RenderKeyOpts identifies one rendering of a DOT source.
type RenderKeyOpts struct {
	Renderer string
	Version  string
	Format   string
}

// Keyer derives cache keys.
type Keyer interface {
	// RenderKey returns the key for rendered output of the DOT source whose
	// content hash is sourceHash.
	RenderKey(sourceHash string, opts RenderKeyOpts) string
}

// DefaultKeyer builds keys of the form "render:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey hashes the source hash with every option.
func (DefaultKeyer) RenderKey(sourceHash string, opts RenderKeyOpts) string {
	return hashKey("render", sourceHash, opts.Renderer, opts.Version, opts.Format)
}
