package cache

import (
	"context"
	"hash/maphash"

	"github.com/hupe1980/meowhash/internal/resource"
)

const numShards = 64

// ShardedLRUBlockCache distributes entries across 64 LRU shards to reduce
// lock contention between concurrent readers.
type ShardedLRUBlockCache struct {
	shards [numShards]*LRUBlockCache
	seed   maphash.Seed
}

// NewShardedLRUBlockCache creates a new sharded LRU cache.
// The capacity is divided evenly across all shards.
func NewShardedLRUBlockCache(capacity int64, rc *resource.Controller) *ShardedLRUBlockCache {
	shardCapacity := max(capacity/numShards, 1)

	s := &ShardedLRUBlockCache{
		seed: maphash.MakeSeed(),
	}
	for i := range numShards {
		s.shards[i] = NewLRUBlockCache(shardCapacity, rc)
	}
	return s
}

func (s *ShardedLRUBlockCache) shard(key CacheKey) *LRUBlockCache {
	var h maphash.Hash
	h.SetSeed(s.seed)
	_ = h.WriteByte(byte(key.Kind))
	_, _ = h.WriteString(key.Name)
	return s.shards[h.Sum64()%numShards]
}

// Get returns a cached value.
func (s *ShardedLRUBlockCache) Get(ctx context.Context, key CacheKey) ([]byte, bool) {
	return s.shard(key).Get(ctx, key)
}

// Set caches a value.
func (s *ShardedLRUBlockCache) Set(ctx context.Context, key CacheKey, b []byte) {
	s.shard(key).Set(ctx, key, b)
}

// Invalidate removes entries matching the predicate from every shard.
func (s *ShardedLRUBlockCache) Invalidate(predicate func(key CacheKey) bool) {
	for _, shard := range s.shards {
		shard.Invalidate(predicate)
	}
}

// Stats returns aggregated hit/miss statistics.
func (s *ShardedLRUBlockCache) Stats() (hits, misses int64) {
	for _, shard := range s.shards {
		h, m := shard.Stats()
		hits += h
		misses += m
	}
	return hits, misses
}

// Size returns the total size across all shards.
func (s *ShardedLRUBlockCache) Size() int64 {
	var total int64
	for _, shard := range s.shards {
		total += shard.Size()
	}
	return total
}

// ShardStats is the state of one shard.
type ShardStats struct {
	ShardID int
	Size    int64
	Entries int
	Hits    int64
	Misses  int64
}

// ShardStats returns per-shard statistics.
func (s *ShardedLRUBlockCache) ShardStats() []ShardStats {
	stats := make([]ShardStats, numShards)
	for i, shard := range s.shards {
		h, m := shard.Stats()
		stats[i] = ShardStats{
			ShardID: i,
			Size:    shard.Size(),
			Entries: shard.Len(),
			Hits:    h,
			Misses:  m,
		}
	}
	return stats
}
