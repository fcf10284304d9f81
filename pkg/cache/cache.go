// Package cache stores loaded data and rendered chart artifacts.
//
// Three backends implement [Cache]:
//   - [NullCache] never stores anything; used when caching is disabled.
//   - [FileCache] keeps one JSON file per entry; used by the CLI.
//   - [RedisCache] shares entries between server instances.
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes every input that changes
// the stored bytes, and [ScopedKeyer] prefixes keys to isolate tenants:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(spec), cache.ArtifactKeyOpts{Format: "svg", Width: 640, Height: 480})
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    return data, nil
//	}
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	// TTLData bounds how long a loaded data file is reused.
	TTLData = 24 * time.Hour
	// TTLArtifact bounds how long a rendered artifact is reused.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key; ttl <= 0 keeps it until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// DataKey identifies rows loaded from a source whose content hashes to
	// contentHash.
	DataKey(source, contentHash string) string
	// ArtifactKey identifies one rendered output of a chart.
	ArtifactKey(chartHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render inputs an artifact depends on besides the
// chart itself.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Theme   string  `json:"theme,omitempty"`
	Animate bool    `json:"animate,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "data:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DataKey(source, contentHash string) string {
	return hashKey("data", source, contentHash)
}

func (DefaultKeyer) ArtifactKey(chartHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", chartHash, opts)
}
