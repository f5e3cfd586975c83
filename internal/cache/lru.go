package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/meowhash/internal/resource"
)

// LRUBlockCache is a mutex-guarded LRU bounded by total value bytes.
type LRUBlockCache struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	items     map[CacheKey]*list.Element
	evictList *list.List
	rc        *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	key   CacheKey
	value []byte
}

// NewLRUBlockCache creates a new LRU cache with the given capacity in bytes.
// If rc is non-nil, cached bytes are charged to its memory budget.
func NewLRUBlockCache(capacity int64, rc *resource.Controller) *LRUBlockCache {
	return &LRUBlockCache{
		capacity:  capacity,
		items:     make(map[CacheKey]*list.Element),
		evictList: list.New(),
		rc:        rc,
	}
}

// Get returns a cached value.
func (c *LRUBlockCache) Get(_ context.Context, key CacheKey) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)
		return ent.Value.(*entry).value, true
	}
	c.misses.Add(1)
	return nil, false
}

// Set caches a value. Values larger than the capacity are not cached.
func (c *LRUBlockCache) Set(_ context.Context, key CacheKey, b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	itemSize := int64(len(b))
	if itemSize > c.capacity {
		return
	}

	if ent, ok := c.items[key]; ok {
		old := ent.Value.(*entry)
		oldSize := int64(len(old.value))
		if itemSize > oldSize && !c.rc.TryAcquireMemory(itemSize-oldSize) {
			// Keep the old value if the budget refuses the growth.
			c.evictList.MoveToFront(ent)
			return
		}
		if itemSize < oldSize {
			c.rc.ReleaseMemory(oldSize - itemSize)
		}
		c.size += itemSize - oldSize
		old.value = b
		c.evictList.MoveToFront(ent)
		c.evictFor(0)
		return
	}

	// Evict first so released bytes can be re-acquired below.
	c.evictFor(itemSize)

	if !c.rc.TryAcquireMemory(itemSize) {
		return
	}

	c.items[key] = c.evictList.PushFront(&entry{key: key, value: b})
	c.size += itemSize
}

// Invalidate removes entries matching the predicate.
func (c *LRUBlockCache) Invalidate(predicate func(key CacheKey) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var toRemove []*list.Element
	for key, element := range c.items {
		if predicate(key) {
			toRemove = append(toRemove, element)
		}
	}

	for _, e := range toRemove {
		c.removeElement(e)
	}
}

// evictFor evicts from the back until incoming more bytes fit.
func (c *LRUBlockCache) evictFor(incoming int64) {
	for c.size+incoming > c.capacity {
		element := c.evictList.Back()
		if element == nil {
			return
		}
		c.removeElement(element)
	}
}

func (c *LRUBlockCache) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry)
	delete(c.items, kv.key)
	itemSize := int64(len(kv.value))
	c.size -= itemSize
	c.rc.ReleaseMemory(itemSize)
}

// Stats returns hit and miss counts.
func (c *LRUBlockCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Size returns the current size of the cache in bytes.
func (c *LRUBlockCache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Len returns the number of cached entries.
func (c *LRUBlockCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
