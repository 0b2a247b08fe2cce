package fetch

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// PageCache keeps fetched pages for a limited time. A nil *PageCache
// caches nothing.
type PageCache struct {
	cache *gocache.Cache
}

// NewPageCache creates a page cache whose entries expire after ttl.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{cache: gocache.New(ttl, 2*ttl)}
}

// Get retrieves a page.
func (c *PageCache) Get(url string) (string, bool) {
	if c == nil {
		return "", false
	}
	if val, found := c.cache.Get(url); found {
		return val.(string), true
	}
	return "", false
}

// Set stores a page with the default expiration.
func (c *PageCache) Set(url, page string) {
	if c == nil {
		return
	}
	c.cache.SetDefault(url, page)
}

// Len returns the number of cached pages, expired ones included until the
// next cleanup.
func (c *PageCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.ItemCount()
}

// Clear removes every page.
func (c *PageCache) Clear() {
	if c == nil {
		return
	}
	c.cache.Flush()
}
