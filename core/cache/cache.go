package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Cache is a thread-safe in-process key-value store with TTL and tag
// invalidation. Master-data repositories use it to avoid re-reading
// warehouses/suppliers/products on every request.
type Cache struct {
	m        sync.Map
	tagIndex sync.Map // tag -> *sync.Map of keys
}

var (
	once     sync.Once
	instance *Cache
)

// GetInstance returns the process-wide cache.
func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

func NewCache() *Cache {
	return &Cache{}
}

type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // UnixNano; 0 means no expiration
}

// Set stores a value with an optional TTL in seconds (0 = no expiration)
// and optional tags for group invalidation.
func (c *Cache) Set(key string, value interface{}, ttl int64, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(time.Duration(ttl) * time.Second).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
	for _, tag := range tags {
		keys, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		keys.(*sync.Map).Store(key, struct{}{})
	}
}

// Get returns (value, true) if the key is present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
		c.m.Delete(key)
		return nil, false
	}
	return item.Value, true
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	c.m.Delete(key)
}

// DeleteByTag removes every key registered under a tag.
func (c *Cache) DeleteByTag(tag string) {
	keys, ok := c.tagIndex.Load(tag)
	if !ok {
		return
	}
	keys.(*sync.Map).Range(func(k, _ interface{}) bool {
		c.m.Delete(k.(string))
		return true
	})
	c.tagIndex.Delete(tag)
}

// Flush clears every entry and tag index. Test fixtures call this so cached
// master-data never crosses database boundaries.
func (c *Cache) Flush() {
	c.m.Range(func(k, _ interface{}) bool {
		c.m.Delete(k)
		return true
	})
	c.tagIndex.Range(func(k, _ interface{}) bool {
		c.tagIndex.Delete(k)
		return true
	})
}

// Key builds a composite cache key from parts.
func Key(parts ...interface{}) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(s, "|")
}
