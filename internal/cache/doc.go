// Package cache provides byte-budgeted LRU caches for immutable blobs.
//
// Entries are keyed by CacheKey{Kind, Name}. Blob names in a deduplicating
// store are content addresses, so a cached value can only go stale through an
// explicit Put or Delete of the same name; callers invalidate on those paths.
//
// ShardedLRUBlockCache spreads keys over 64 independently locked LRU shards
// for concurrent readers. Both caches can charge their bytes to a shared
// resource.Controller and refuse entries the controller cannot admit.
package cache
