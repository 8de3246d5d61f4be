// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultCacheTTL keeps fetched attributes fresh for a day, matching the
// update cadence of the upstream carbon and price data.
const DefaultCacheTTL = 24 * time.Hour

// Cache memoizes backend results per (backend, site) for a TTL so repeated
// analysis runs within one session do not re-query external APIs. The
// clock is injected so tests can advance time.
type Cache struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	ttl     time.Duration
	entries map[cacheKey]cacheEntry
}

type cacheKey struct {
	backend string
	siteID  string
}

type cacheEntry struct {
	attrs   map[string]float64
	expires time.Time
}

// NewCache returns a cache with the given TTL. A zero ttl uses
// DefaultCacheTTL.
func NewCache(ttl time.Duration, clock clockwork.Clock) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
	}
}

// Get returns the cached attributes for a backend and site, if fresh.
func (c *Cache) Get(backend, siteID string) (map[string]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[cacheKey{backend, siteID}]
	if !ok || c.clock.Now().After(entry.expires) {
		return nil, false
	}

	attrs := make(map[string]float64, len(entry.attrs))
	for k, v := range entry.attrs {
		attrs[k] = v
	}
	return attrs, true
}

// Put stores a backend result. The attribute map is copied.
func (c *Cache) Put(backend, siteID string, attrs map[string]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := make(map[string]float64, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	c.entries[cacheKey{backend, siteID}] = cacheEntry{
		attrs:   copied,
		expires: c.clock.Now().Add(c.ttl),
	}
}
