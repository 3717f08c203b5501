package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"krishisahay-be/pkg/llm"
	"krishisahay-be/pkg/search"
)

// DefaultResponseTTL is how long a generated answer stays servable.
const DefaultResponseTTL = 1800 * time.Second

// ResponseCache is a TTL cache in front of the LLM gateway, keyed by the
// normalized query so case/whitespace variants collapse to one entry.
// Expired entries are evicted lazily on lookup; go-cache's janitor also
// sweeps them in the background. Error responses are never stored.
type ResponseCache struct {
	cache *cache.Cache
	ttl   time.Duration

	// now is replaceable in tests so expiry is verifiable without sleeping.
	now func() time.Time
}

type cachedResponse struct {
	result    *llm.GenerationResult
	expiresAt time.Time
}

// NewResponseCache creates a cache with the given TTL (DefaultResponseTTL
// when zero or negative).
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Key returns the cache key for a query: lowercased with whitespace
// collapsed. Volatile context fields are deliberately excluded.
func (c *ResponseCache) Key(query string) string {
	return search.Normalize(query)
}

// Get returns the cached result for the query, or a miss. A hit on an
// expired entry behaves exactly like a miss and removes the entry.
func (c *ResponseCache) Get(query string) (*llm.GenerationResult, bool) {
	key := c.Key(query)
	x, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	entry := x.(cachedResponse)
	if !c.now().Before(entry.expiresAt) {
		c.cache.Delete(key)
		return nil, false
	}
	return entry.result, true
}

// Put stores a successful generation result under the normalized query.
func (c *ResponseCache) Put(query string, result *llm.GenerationResult) {
	c.cache.Set(c.Key(query), cachedResponse{
		result:    result,
		expiresAt: c.now().Add(c.ttl),
	}, c.ttl)
}

// Clear drops every entry.
func (c *ResponseCache) Clear() {
	c.cache.Flush()
}

// Size returns the number of stored entries, possibly including items not
// yet swept.
func (c *ResponseCache) Size() int {
	return c.cache.ItemCount()
}
