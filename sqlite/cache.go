package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/companyintel"
)

// Compile-time interface verification.
var _ companyintel.Cache = (*Cache)(nil)

// Cache implements companyintel.Cache on the cache_entries table.
type Cache struct {
	db *DB

	// TTL bounds entry age. Zero selects companyintel.DefaultCacheTTL.
	TTL time.Duration

	// Now returns the current time. Nil selects time.Now.
	Now func() time.Time
}

// NewCache creates a new Cache.
func NewCache(db *DB) *Cache {
	return &Cache{db: db}
}

// Get implements companyintel.Cache. Expired rows are left in place.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var createdAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT value, created_at
		FROM cache_entries
		WHERE key = ?
	`, key).Scan(&value, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, companyintel.Errorf(companyintel.ENOTFOUND, "cache entry not found: %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	created, err := parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	if companyintel.Expired(created, c.now(), c.ttl()) {
		return nil, companyintel.Errorf(companyintel.ENOTFOUND, "cache entry expired: %s", key)
	}

	return value, nil
}

// Put implements companyintel.Cache.
func (c *Cache) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return companyintel.Errorf(companyintel.EINVALID, "cache key required")
	}
	if value == nil {
		value = []byte{}
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO cache_entries (key, value, created_at)
		VALUES (?, ?, ?)
	`, key, value, formatTime(c.now()))
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
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
