// Package cache provides byte-level caching for rendered artifacts.
//
// Renders of large trees (SVG, PNG) are deterministic functions of the
// document content and the render options, which makes them cheap to
// cache. The package offers three backends: FileCache for local CLI
// usage, RedisCache for the server, and NullCache to disable caching.
//
// Keys are produced by a Keyer so that all backends share one naming
// scheme and so tests can substitute predictable keys.
package cache

import (
	"context"
	"time"
)

// =============================================================================
// Cache Interface
// =============================================================================

// Cache stores opaque byte values under string keys with optional TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Key Generation
// =============================================================================

// DocumentKeyOpts affect document cache keys.
type DocumentKeyOpts struct {
	Name string `json:"name"`
}

// LayoutKeyOpts affect layout cache keys. Spacing changes node
// positions, so it is part of the key.
type LayoutKeyOpts struct {
	SpaceX float64 `json:"space_x"`
	SpaceY float64 `json:"space_y"`
}

// RenderKeyOpts affect render cache keys.
type RenderKeyOpts struct {
	Format string `json:"format"` // "svg", "png", "dot"
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Keyer generates cache keys for the artifact kinds the system caches.
type Keyer interface {
	// DocumentKey generates a key for a stored document snapshot.
	DocumentKey(opts DocumentKeyOpts) string

	// LayoutKey generates a key for a computed layout, derived from the
	// hash of the tree structure plus the spacing options.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// RenderKey generates a key for a rendered artifact, derived from
	// the hash of the laid-out document plus the render options.
	RenderKey(docHash string, opts RenderKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key of the form "doc:<hash>".
func (k *DefaultKeyer) DocumentKey(opts DocumentKeyOpts) string {
	return hashKey("doc", opts)
}

// LayoutKey generates a key of the form "layout:<hash>".
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// RenderKey generates a key of the form "render:<hash>".
func (k *DefaultKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return hashKey("render", docHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
