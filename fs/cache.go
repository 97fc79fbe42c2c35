// Package fs provides file-based storage: a TTL cache and report export.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/companyintel"
)

// Ensure Cache implements companyintel.Cache at compile time.
var _ companyintel.Cache = (*Cache)(nil)

// record is the on-disk form of a cache entry.
type record struct {
	CreatedAt time.Time `json:"createdAt"`
	Value     []byte    `json:"value"`
}

// Cache stores one JSON record per key under a directory.
// Writes go to a temporary file that is renamed into place, so readers never
// see a partial record. Concurrent writers to the same key are not
// coordinated; the last rename wins.
type Cache struct {
	dir string

	// TTL bounds entry age. Zero selects companyintel.DefaultCacheTTL.
	TTL time.Duration

	// Now returns the current time. Nil selects time.Now.
	Now func() time.Time
}

// NewCache creates a Cache rooted at dir. The directory is created on the
// first Put.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Get implements companyintel.Cache.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	path, err := c.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, companyintel.Errorf(companyintel.ENOTFOUND, "cache entry not found: %s", key)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}

	if companyintel.Expired(rec.CreatedAt, c.now(), c.ttl()) {
		return nil, companyintel.Errorf(companyintel.ENOTFOUND, "cache entry expired: %s", key)
	}
	return rec.Value, nil
}

// Put implements companyintel.Cache.
func (c *Cache) Put(_ context.Context, key string, value []byte) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record{CreatedAt: c.now().UTC(), Value: value})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	return writeFileAtomic(path, data)
}

func (c *Cache) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", companyintel.Errorf(companyintel.EINVALID, "invalid cache key: %q", key)
	}
	return filepath.Join(c.dir, key+".json"), nil
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

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
