package cache

import (
	"sort"
	"sync"
)

// Entry is one packed buffer: Count elements of Format.
type Entry struct {
	Format string
	Count  int
	Data   []byte
}

func (e Entry) clone() Entry {
	data := make([]byte, len(e.Data))
	copy(data, e.Data)
	e.Data = data
	return e
}

// BufferCache defines a generic interface for storing packed buffers.
type BufferCache interface {
	// Get retrieves an entry from the cache.
	Get(key string) (Entry, bool)
	// Put stores an entry in the cache, replacing any previous value.
	Put(key string, e Entry)
	// Delete removes an entry and reports whether it existed.
	Delete(key string) bool
	// Size returns the number of items in the cache.
	Size() int
	// Keys returns every key in sorted order.
	Keys() []string
}

// MapCache is a simple in-memory implementation of BufferCache.
type MapCache struct {
	data map[string]Entry
	mu   sync.RWMutex
}

func NewMapCache() *MapCache {
	return &MapCache{
		data: make(map[string]Entry),
	}
}

func (c *MapCache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Return copy to avoid modification of cached value
	if e, ok := c.data[key]; ok {
		return e.clone(), true
	}
	return Entry{}, false
}

func (c *MapCache) Put(key string, e Entry) {
	// Store copy
	e = e.clone()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = e
}

func (c *MapCache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.data[key]
	delete(c.data, key)
	return ok
}

func (c *MapCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func (c *MapCache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return keys
}
