package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// cleanupInterval is how often expired entries are purged in the background
const cleanupInterval = time.Minute

// MemoryCache is an in-process CacheService backed by go-cache
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) ([]byte, error) {
	item, found := c.store.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}
	value, ok := item.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}
	return value, nil
}

// Set stores a copy of value; a non-positive expiration never expires
func (c *MemoryCache) Set(key string, value []byte, expiration time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	if expiration <= 0 {
		expiration = gocache.NoExpiration
	}
	c.store.Set(key, stored, expiration)
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) error {
	c.store.Delete(key)
	return nil
}

// Len returns the number of live entries
func (c *MemoryCache) Len() int {
	c.store.DeleteExpired()
	return c.store.ItemCount()
}
