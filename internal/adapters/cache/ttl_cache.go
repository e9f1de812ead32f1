package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type ttlCache[T any] struct {
	cache *ttlcache.Cache[string, T]
}

func (c *ttlCache[T]) Get(key string) (T, bool) {
	item := c.cache.Get(key)
	if item == nil {
		var empty T
		return empty, false
	}
	return item.Value(), true
}

func (c *ttlCache[T]) Set(key string, data T, ttl time.Duration) {
	c.cache.Set(key, data, ttl)
}

func (c *ttlCache[T]) Delete(key string) {
	c.cache.Delete(key)
}

// NewTTLCache returns a Cache backed by jellydator/ttlcache. Reads refresh
// the LRU order but never extend an entry's TTL, so expiry always runs from
// insertion time. The background cleaner only reclaims memory for entries
// that are never read again; expired entries are already misses on Get.
func NewTTLCache[T any](capacity uint64) Cache[T] {
	ttlCacheImpl := ttlcache.New[string, T](
		ttlcache.WithCapacity[string, T](capacity),
		ttlcache.WithDisableTouchOnHit[string, T](),
	)
	go ttlCacheImpl.Start()
	return &ttlCache[T]{cache: ttlCacheImpl}
}
