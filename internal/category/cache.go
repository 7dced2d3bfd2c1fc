package category

import (
	"sync"
	"time"

	"github.com/mfpinhal/extrato/internal/statement"
)

type cacheKey struct {
	bank        statement.Bank
	workspaceID int64
}

type cacheEntry struct {
	patterns []compiledPattern
	expires  time.Time
}

// patternCache holds compiled pattern sets per (bank, workspace) for a short
// interval, amortizing lookups during bulk categorization. Entries are
// immutable snapshots; invalidation is coarse and clears everything, trading
// cache efficiency for correctness.
type patternCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[cacheKey]cacheEntry
	now     func() time.Time
}

func newPatternCache(ttl time.Duration) *patternCache {
	return &patternCache{
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
		now:     time.Now,
	}
}

func (c *patternCache) get(key cacheKey) ([]compiledPattern, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expires) {
		return nil, false
	}

	return entry.patterns, true
}

func (c *patternCache) put(key cacheKey, patterns []compiledPattern) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		patterns: patterns,
		expires:  c.now().Add(c.ttl),
	}
}

// invalidate drops every cached pattern set. Called on any pattern create or
// delete; the next lookup refetches from the store.
func (c *patternCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[cacheKey]cacheEntry)
}
