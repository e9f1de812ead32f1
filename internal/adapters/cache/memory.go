package cache

import (
	"container/list"
	"sync"
	"time"
)

type memoryCacheEntry[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

// memoryCache is a map + doubly-linked-list LRU store with an injectable
// clock. It exists so TTL behavior can be tested with simulated time; the
// production store is NewTTLCache.
type memoryCache[T any] struct {
	capacity int
	nowFunc  func() time.Time

	mutex   sync.Mutex
	entries map[string]*list.Element
	// lru holds *memoryCacheEntry[T]; front is most recently used
	lru *list.List
}

func (c *memoryCache[T]) Get(key string) (T, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var empty T
	elem, ok := c.entries[key]
	if !ok {
		return empty, false
	}

	entry := elem.Value.(*memoryCacheEntry[T])
	if !c.nowFunc().Before(entry.expiresAt) {
		// Lazy expiry: evict on the read that discovers it
		c.lru.Remove(elem)
		delete(c.entries, key)
		return empty, false
	}

	c.lru.MoveToFront(elem)
	return entry.data, true
}

func (c *memoryCache[T]) Set(key string, data T, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	expiresAt := c.nowFunc().Add(ttl)

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryCacheEntry[T])
		entry.data = data
		entry.expiresAt = expiresAt
		c.lru.MoveToFront(elem)
		return
	}

	if c.lru.Len() >= c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.entries, oldest.Value.(*memoryCacheEntry[T]).key)
		}
	}

	c.entries[key] = c.lru.PushFront(&memoryCacheEntry[T]{key: key, data: data, expiresAt: expiresAt})
}

func (c *memoryCache[T]) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.lru.Remove(elem)
		delete(c.entries, key)
	}
}

func NewMemoryCache[T any](capacity int, nowFunc func() time.Time) Cache[T] {
	return &memoryCache[T]{
		capacity: capacity,
		nowFunc:  nowFunc,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
	}
}
