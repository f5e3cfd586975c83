package blobstore

import (
	"context"
	"errors"

	"github.com/hupe1980/meowhash/internal/cache"
	"golang.org/x/sync/errgroup"
)

// prefetchConcurrency bounds parallel backend reads issued by Prefetch.
const prefetchConcurrency = 16

// CachingStore wraps a BlobStore and caches whole blobs on read.
type CachingStore struct {
	inner BlobStore
	cache cache.BlockCache
}

// NewCachingStore creates a new CachingStore.
func NewCachingStore(inner BlobStore, c cache.BlockCache) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: c,
	}
}

// NewLRUCachingStore wraps inner with a sharded LRU of capacity bytes.
func NewLRUCachingStore(inner BlobStore, capacity int64) *CachingStore {
	return NewCachingStore(inner, cache.NewShardedLRUBlockCache(capacity, nil))
}

func key(name string) cache.CacheKey {
	return cache.CacheKey{Kind: cache.CacheKindBlob, Name: name}
}

// Get returns a blob from the cache, reading through on a miss.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.cache.Get(ctx, key(name)); ok {
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}

	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	cached := make([]byte, len(data))
	copy(cached, data)
	s.cache.Set(ctx, key(name), cached)
	return data, nil
}

// Put writes through and drops any cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

// PutIfAbsent uses the conditional put of the wrapped store. Stores without
// one get a Stat followed by Put, which is not atomic.
func (s *CachingStore) PutIfAbsent(ctx context.Context, name string, data []byte) (bool, error) {
	if cp, ok := s.inner.(ConditionalPutter); ok {
		created, err := cp.PutIfAbsent(ctx, name, data)
		if created {
			s.invalidate(name)
		}
		return created, err
	}

	if _, err := s.inner.Stat(ctx, name); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}
	if err := s.Put(ctx, name, data); err != nil {
		return false, err
	}
	return true, nil
}

// Stat answers from the cache when possible.
func (s *CachingStore) Stat(ctx context.Context, name string) (int64, error) {
	if data, ok := s.cache.Get(ctx, key(name)); ok {
		return int64(len(data)), nil
	}
	return s.inner.Stat(ctx, name)
}

// Delete removes the blob and drops any cached copy.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

// List is passed through.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Prefetch loads the named blobs into the cache in parallel.
// Missing blobs are skipped.
func (s *CachingStore) Prefetch(ctx context.Context, names ...string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchConcurrency)

	for _, name := range names {
		if _, ok := s.cache.Get(gctx, key(name)); ok {
			continue
		}
		g.Go(func() error {
			data, err := s.inner.Get(gctx, name)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil
				}
				return err
			}
			s.cache.Set(gctx, key(name), data)
			return nil
		})
	}
	return g.Wait()
}

// CacheStats returns cache hit and miss counts.
func (s *CachingStore) CacheStats() (hits, misses int64) {
	return s.cache.Stats()
}

func (s *CachingStore) invalidate(name string) {
	k := key(name)
	s.cache.Invalidate(func(c cache.CacheKey) bool {
		return c == k
	})
}
