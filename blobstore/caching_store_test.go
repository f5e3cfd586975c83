package blobstore

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/hupe1980/meowhash/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore counts backend reads.
type countingStore struct {
	*MemoryStore
	gets atomic.Int64
}

func (c *countingStore) Get(ctx context.Context, name string) ([]byte, error) {
	c.gets.Add(1)
	return c.MemoryStore.Get(ctx, name)
}

func TestCachingStore(t *testing.T) {
	runStoreTests(t, NewLRUCachingStore(NewMemoryStore(), 1<<20))
}

func TestCachingStore_ReadThrough(t *testing.T) {
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	s := NewCachingStore(inner, cache.NewLRUBlockCache(1<<20, nil))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "blob", []byte("payload")))

	for range 3 {
		got, err := s.Get(ctx, "blob")
		require.NoError(t, err)
		assert.Equal(t, "payload", string(got))
	}
	assert.Equal(t, int64(1), inner.gets.Load())

	size, err := s.Stat(ctx, "blob")
	require.NoError(t, err)
	assert.Equal(t, int64(7), size)

	hits, _ := s.CacheStats()
	assert.GreaterOrEqual(t, hits, int64(2))
}

func TestCachingStore_InvalidatesOnWrite(t *testing.T) {
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	s := NewCachingStore(inner, cache.NewLRUBlockCache(1<<20, nil))
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "blob", []byte("v1")))
	_, err := s.Get(ctx, "blob")
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "blob", []byte("v2")))
	got, err := s.Get(ctx, "blob")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))

	require.NoError(t, s.Delete(ctx, "blob"))
	_, err = s.Get(ctx, "blob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachingStore_Prefetch(t *testing.T) {
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	s := NewLRUCachingStore(inner, 1<<20)
	ctx := context.Background()

	var names []string
	for i := range 40 {
		name := fmt.Sprintf("chunks/%02d", i)
		names = append(names, name)
		require.NoError(t, inner.Put(ctx, name, []byte(name)))
	}

	require.NoError(t, s.Prefetch(ctx, append(names, "chunks/missing")...))
	assert.Equal(t, int64(41), inner.gets.Load())

	for _, name := range names {
		got, err := s.Get(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, name, string(got))
	}
	assert.Equal(t, int64(41), inner.gets.Load(), "reads after prefetch should hit the cache")

	var _ Prefetcher = s
}

func TestCachingStore_PutIfAbsent(t *testing.T) {
	inners := map[string]BlobStore{
		"conditional": NewMemoryStore(),
		"plain":       struct{ BlobStore }{NewMemoryStore()},
	}

	for name, inner := range inners {
		t.Run(name, func(t *testing.T) {
			s := NewLRUCachingStore(inner, 1<<20)
			ctx := context.Background()

			ok, err := s.PutIfAbsent(ctx, "blob", []byte("v1"))
			require.NoError(t, err)
			assert.True(t, ok)

			_, err = s.Get(ctx, "blob")
			require.NoError(t, err)

			ok, err = s.PutIfAbsent(ctx, "blob", []byte("v2"))
			require.NoError(t, err)
			assert.False(t, ok)

			got, err := s.Get(ctx, "blob")
			require.NoError(t, err)
			assert.Equal(t, "v1", string(got))
		})
	}
}
