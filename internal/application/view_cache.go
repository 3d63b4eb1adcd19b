package application

import (
	"sync"
	"time"

	"github.com/example/staff-calendar/internal/calendar"
)

const maxCachedViews = 24

// viewCache stores recently composed month views to avoid re-expanding
// recurrence rules for repeated reads while the stores remain unchanged.
// Views are immutable once composed, so cached pointers are shared.
type viewCache struct {
	mu      sync.RWMutex
	now     func() time.Time
	ttl     time.Duration
	max     int
	entries map[viewCacheKey]viewCacheEntry
}

type viewCacheKey struct {
	year  int
	month time.Month
}

type viewCacheEntry struct {
	view      *calendar.MonthView
	expiresAt time.Time
}

func newViewCache(ttl time.Duration, max int) *viewCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if max <= 0 {
		max = maxCachedViews
	}
	return &viewCache{
		now:     time.Now,
		ttl:     ttl,
		max:     max,
		entries: make(map[viewCacheKey]viewCacheEntry),
	}
}

func (c *viewCache) get(year int, month time.Month) (*calendar.MonthView, bool) {
	if c == nil {
		return nil, false
	}
	key := viewCacheKey{year: year, month: month}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.view, true
}

func (c *viewCache) put(year int, month time.Month, view *calendar.MonthView) {
	if c == nil {
		return
	}
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.max {
		c.evictOneLocked()
	}
	c.entries[viewCacheKey{year: year, month: month}] = viewCacheEntry{view: view, expiresAt: expiry}
}

func (c *viewCache) invalidate(year int, month time.Month) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, viewCacheKey{year: year, month: month})
	c.mu.Unlock()
}

func (c *viewCache) invalidateAll() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[viewCacheKey]viewCacheEntry)
	c.mu.Unlock()
}

func (c *viewCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *viewCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}
