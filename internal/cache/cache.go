package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is the lookup side the movie client needs.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
}

var _ Cache = (*LRUCache)(nil)

// LRUCache is a size bounded cache whose entries expire after ttl.
type LRUCache struct {
	lru *expirable.LRU[string, interface{}]
}

// New returns a cache holding at most capacity entries. A zero ttl means
// entries never expire.
func New(capacity int, ttl time.Duration) *LRUCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCache{
		lru: expirable.NewLRU[string, interface{}](capacity, nil, ttl),
	}
}

func (c *LRUCache) Get(key string) (interface{}, bool) {
	return c.lru.Get(key)
}

func (c *LRUCache) Set(key string, value interface{}) {
	c.lru.Add(key, value)
}
