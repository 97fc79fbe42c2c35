// Package inmem provides an in-memory companyintel.Cache.
package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/companyintel"
)

var _ companyintel.Cache = (*Cache)(nil)

type entry struct {
	value     []byte
	createdAt time.Time
}

// Cache is a mutex-guarded map with lazy TTL expiry.
// The zero value is an empty cache ready to use. It is safe for concurrent
// use.
type Cache struct {
	// TTL bounds entry age. Zero selects companyintel.DefaultCacheTTL.
	TTL time.Duration

	// Now returns the current time. Nil selects time.Now.
	Now func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Get implements companyintel.Cache.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || companyintel.Expired(e.createdAt, c.now(), c.ttl()) {
		return nil, companyintel.Errorf(companyintel.ENOTFOUND, "cache entry not found: %s", key)
	}
	return append([]byte(nil), e.value...), nil
}

// Put implements companyintel.Cache.
func (c *Cache) Put(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]entry)
	}
	c.entries[key] = entry{
		value:     append([]byte(nil), value...),
		createdAt: c.now(),
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return companyintel.DefaultCacheTTL
}

func (c *Cache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
