package client

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of responses kept by NewLRUCache when size <= 0
const DefaultCacheSize = 256

// Cache stores validated GET response bodies keyed by request path and query
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, body []byte)
	// Invalidate drops every entry whose key starts with prefix. An empty
	// prefix clears the cache.
	Invalidate(prefix string)
}

// LRUCache is a bounded Cache
type LRUCache struct {
	entries *lru.Cache[string, []byte]
}

// NewLRUCache creates a cache holding at most size responses
func NewLRUCache(size int) (*LRUCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{entries: entries}, nil
}

func (c *LRUCache) Get(key string) ([]byte, bool) {
	return c.entries.Get(key)
}

func (c *LRUCache) Set(key string, body []byte) {
	c.entries.Add(key, body)
}

func (c *LRUCache) Invalidate(prefix string) {
	if prefix == "" {
		c.entries.Purge()
		return
	}
	for _, key := range c.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.entries.Remove(key)
		}
	}
}

// Len reports the number of cached responses
func (c *LRUCache) Len() int {
	return c.entries.Len()
}

type noCache struct{}

func (noCache) Get(string) ([]byte, bool) { return nil, false }
func (noCache) Set(string, []byte)        {}
func (noCache) Invalidate(string)         {}
