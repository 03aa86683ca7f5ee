// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resource implements the generic access path to external
// biological data APIs: a TTL cache, an advisory per-resource rate
// limiter, a priority-ranked resource selector, and the HTTP client tying
// them together. All shared state lives in explicitly owned objects; the
// package keeps no globals.
package resource

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/meshintel/bioquery/pkg/types"
)

// Cache is an in-memory response cache keyed by resource, endpoint, and
// canonicalized parameters. Entries expire lazily after the TTL; only the
// max-size bound actively evicts, removing the single globally oldest
// entry by insertion time.
type Cache struct {
	mu      sync.Mutex
	enabled bool
	ttl     time.Duration
	maxSize int
	entries map[string]cacheEntry

	now func() time.Time // test hook
}

type cacheEntry struct {
	payload    map[string]any
	insertedAt time.Time
}

// NewCache builds a cache from configuration. A disabled cache always
// misses on Get and ignores Put.
func NewCache(cfg types.CacheConfig) *Cache {
	return &Cache{
		enabled: cfg.Enabled,
		ttl:     cfg.TTL,
		maxSize: cfg.MaxSize,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// CacheKey derives the deterministic fingerprint for one request.
// url.Values.Encode sorts keys, so equal parameter sets always map to the
// same key regardless of insertion order.
func CacheKey(resourceID, endpoint string, params url.Values) string {
	return strings.Join([]string{resourceID, endpoint, params.Encode()}, ":")
}

// Get returns the payload under key when present and younger than the
// TTL. A stale entry counts as a miss but is left in place; it is either
// overwritten by the next Put or removed by size eviction.
func (c *Cache) Get(key string) (map[string]any, bool) {
	if !c.enabled {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		return nil, false
	}
	return e.payload, true
}

// Put stores or overwrites the payload under key, timestamped now. When
// the entry count exceeds the maximum, the globally oldest entry is
// evicted, irrespective of which resource it belongs to.
func (c *Cache) Put(key string, payload map[string]any) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{payload: payload, insertedAt: c.now()}

	if c.maxSize > 0 && len(c.entries) > c.maxSize {
		c.evictOldest()
	}
}

// Len returns the current number of entries, including stale ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest removes the entry with the earliest insertion timestamp.
// Caller holds the lock.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.insertedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.insertedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
