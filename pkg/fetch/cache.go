package fetch

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCacheTTL is the default time-to-live for cached response bodies.
const DefaultCacheTTL = 1 * time.Hour

// ResponseCache is an in-memory TTL cache for API response bodies, keyed by
// request URL. Safe for concurrent use.
type ResponseCache struct {
	cache *gocache.Cache
}

// NewResponseCache creates a cache with the given default TTL. Expired
// entries are swept at twice the TTL.
func NewResponseCache(defaultTTL time.Duration) *ResponseCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultCacheTTL
	}
	return &ResponseCache{cache: gocache.New(defaultTTL, 2*defaultTTL)}
}

// Get retrieves a cached response body by key.
func (responseCache *ResponseCache) Get(key string) ([]byte, bool) {
	if value, found := responseCache.cache.Get(key); found {
		return value.([]byte), true
	}
	return nil, false
}

// Set stores a response body with the default TTL.
func (responseCache *ResponseCache) Set(key string, body []byte) {
	responseCache.cache.Set(key, body, gocache.DefaultExpiration)
}

// Invalidate removes a specific entry from the cache.
func (responseCache *ResponseCache) Invalidate(key string) {
	responseCache.cache.Delete(key)
}

// Len returns the number of entries currently in the cache.
func (responseCache *ResponseCache) Len() int {
	return responseCache.cache.ItemCount()
}
