package dao

import (
	"context"
	"sync"
	"time"

	"github.com/a1s/gridview/internal/model1"
)

// DefaultCacheTTL is the default time-to-live for cached rows.
const DefaultCacheTTL = 5 * time.Second

type cacheEntry struct {
	rows      model1.Rows
	timestamp time.Time
}

// RowCache provides TTL-based caching for row sources.
type RowCache struct {
	data map[string]cacheEntry
	ttl  time.Duration
	mx   sync.RWMutex
}

// NewRowCache creates a new RowCache with the specified TTL.
func NewRowCache(ttl time.Duration) *RowCache {
	return &RowCache{
		data: make(map[string]cacheEntry),
		ttl:  ttl,
	}
}

// Get returns cached rows for a key. Expired entries are reported missing.
func (c *RowCache) Get(key string) (model1.Rows, bool) {
	c.mx.RLock()
	defer c.mx.RUnlock()

	entry, exists := c.data[key]
	if !exists || time.Since(entry.timestamp) > c.ttl {
		return nil, false
	}

	return entry.rows, true
}

// Set stores rows in the cache with the given key.
func (c *RowCache) Set(key string, rows model1.Rows) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.data[key] = cacheEntry{
		rows:      rows,
		timestamp: time.Now(),
	}
}

// Invalidate removes a specific key from the cache.
func (c *RowCache) Invalidate(key string) {
	c.mx.Lock()
	defer c.mx.Unlock()

	delete(c.data, key)
}

// Clear removes all entries from the cache.
func (c *RowCache) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.data = make(map[string]cacheEntry)
}

// CachedAccessor serves rows from a cache while they are fresh.
type CachedAccessor struct {
	RowAccessor
	cache *RowCache
}

// NewCachedAccessor wraps an accessor with a row cache.
func NewCachedAccessor(a RowAccessor, cache *RowCache) *CachedAccessor {
	return &CachedAccessor{RowAccessor: a, cache: cache}
}

// List returns the cached rows or reloads them from the source.
func (c *CachedAccessor) List(ctx context.Context) (model1.Rows, error) {
	key := c.Location()
	if rows, ok := c.cache.Get(key); ok {
		return rows, nil
	}
	rows, err := c.RowAccessor.List(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, rows)

	return rows, nil
}
