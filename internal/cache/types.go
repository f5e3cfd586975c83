package cache

import "context"

// CacheKind separates key spaces that share one cache.
type CacheKind uint8

const (
	CacheKindUnknown CacheKind = iota
	CacheKindBlob              // raw blobs as stored by a backend
	CacheKindChunk             // decoded chunk payloads
)

// CacheKey identifies a cached value.
type CacheKey struct {
	Kind CacheKind
	Name string
}

// BlockCache is a byte-oriented cache for immutable values.
// Returned slices must be treated as read-only.
type BlockCache interface {
	// Get returns a cached value. ok=false if missing.
	Get(ctx context.Context, key CacheKey) (b []byte, ok bool)
	// Set caches a value. The cache retains b; callers must not modify it afterwards.
	Set(ctx context.Context, key CacheKey, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key CacheKey) bool)
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
	// Size returns the cached bytes.
	Size() int64
}
