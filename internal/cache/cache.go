// Package cache provides TTL caching of completed verdicts keyed by the
// normalized claim text, so repeated submissions of the same claim skip
// the generation backend while the entry is fresh.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/veritaslab/veritas/internal/model"
)

// ResultCache stores completed records keyed by normalized claim text
type ResultCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewResultCache creates a cache with the given default TTL. Expired
// entries are swept at twice the TTL interval.
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ResultCache{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Get retrieves a cached record for the normalized claim
func (c *ResultCache) Get(normalizedClaim string) (*model.Record, bool) {
	if val, found := c.cache.Get(normalizedClaim); found {
		rec := val.(model.Record)
		return &rec, true
	}
	return nil, false
}

// Set stores a record under the normalized claim with the default TTL.
// The record is copied so later mutation by the caller cannot change
// what cache hits observe.
func (c *ResultCache) Set(normalizedClaim string, rec model.Record) {
	c.cache.Set(normalizedClaim, rec, c.ttl)
}

// Clear removes all cached records
func (c *ResultCache) Clear() {
	c.cache.Flush()
}

// Len returns the number of live entries
func (c *ResultCache) Len() int {
	return c.cache.ItemCount()
}
