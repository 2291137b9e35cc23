// Package viewcache is a small per-account cache for rendered dashboard
// view models. Finalizing an onboarding profile invalidates the owner's
// entry so the next dashboard render reflects the new profile.
package viewcache

import (
	"sync"
	"time"
)

// DefaultTTL bounds staleness for entries nobody invalidates.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value   any
	expires time.Time
}

// Cache is a TTL map keyed by account ID. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry
}

// New creates a cache with the given TTL (DefaultTTL when zero).
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl, m: make(map[string]entry)}
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for the cache TTL.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	c.m[key] = entry{value: value, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate removes the entry for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
}
