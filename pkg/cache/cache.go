// Package cache provides the byte-level caches behind the layout pipeline
// and the HTTP service.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI)
//   - [RedisCache]: shared entries in Redis (HTTP service)
//   - [NullCache]: stores nothing (caching disabled, tests)
//
// # Keys
//
// A [Keyer] derives keys from content hashes and option structs, so a
// changed document or a changed layout option never hits a stale entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(docBytes), cache.LayoutKeyOpts{VizType: "treemap"})
//
// Wrap a keyer with [NewScopedKeyer] to isolate tenants sharing one backend.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("cache: not found")
	ErrNetwork  = errors.New("cache: backend unreachable")
)

// Cache is a byte store with per-entry expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the entry and true, or false on a miss. Expired entries
	// are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Default entry lifetimes.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// NullCache misses on every Get and drops every Set.
type NullCache struct{}

// NewNullCache returns the cache used when caching is disabled.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
