package popup

import "go.trai.ch/crxbuild/internal/core/domain"

// cacheState is either emptyCache or populatedCache.
type cacheState interface {
	cacheState()
}

type emptyCache struct{}

func (emptyCache) cacheState() {}

// populatedCache holds the last successful build. entry and bundle are only ever
// replaced together.
type populatedCache struct {
	entry  string
	bundle domain.Bundle
}

func (populatedCache) cacheState() {}

// Cache remembers the bundle of the most recently built entry.
// It is not safe for concurrent use.
type Cache struct {
	state cacheState
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{state: emptyCache{}}
}

// IsStale reports whether entry has to be rebuilt: nothing is cached yet or the
// cached bundle belongs to a different entry.
func (c *Cache) IsStale(entry string) bool {
	switch s := c.state.(type) {
	case populatedCache:
		return s.entry != entry
	default:
		return true
	}
}

// Update replaces the cached entry and bundle.
func (c *Cache) Update(entry string, bundle domain.Bundle) {
	c.state = populatedCache{entry: entry, bundle: bundle}
}

// IsEmpty reports whether the cache has never been populated since the last reset.
func (c *Cache) IsEmpty() bool {
	_, ok := c.state.(populatedCache)
	return !ok
}

// Snapshot returns the cached entry and bundle, or ok == false when empty.
func (c *Cache) Snapshot() (entry string, bundle domain.Bundle, ok bool) {
	s, ok := c.state.(populatedCache)
	if !ok {
		return "", nil, false
	}
	return s.entry, s.bundle, true
}

// Reset drops the cached bundle.
func (c *Cache) Reset() {
	c.state = emptyCache{}
}
