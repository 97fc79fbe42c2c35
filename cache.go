package companyintel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultCacheTTL is how long cached pages, link sets and reports stay valid.
const DefaultCacheTTL = 24 * time.Hour

// Cache kinds used to build keys.
const (
	CacheKindPage   = "page"
	CacheKindLinks  = "links"
	CacheKindReport = "report"
)

// Cache is a TTL-bounded key-value store for serialized payloads.
// Expiry is lazy: entries older than the TTL are reported as missing but
// are not removed until overwritten.
//
// Cache is not safe for concurrent writers to the same key; callers ensure
// a single writer per key.
type Cache interface {
	// Get returns the value stored under key.
	// Returns ENOTFOUND if the key is absent or its entry has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous entry.
	Put(ctx context.Context, key string, value []byte) error
}

// CacheKey returns a content hash of kind and parts. Equal inputs always map
// to the same key.
func CacheKey(kind string, parts ...string) string {
	h := xxhash.New()
	_, _ = h.WriteString(kind)
	for _, p := range parts {
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(p)
	}
	return fmt.Sprintf("%s-%016x", kind, h.Sum64())
}

// ReportCacheKey returns the report key for a company and URL made under
// settings. Company names are compared case-insensitively.
func ReportCacheKey(company, url string, settings ...string) string {
	parts := append([]string{strings.ToLower(strings.TrimSpace(company)), strings.TrimSpace(url)}, settings...)
	return CacheKey(CacheKindReport, parts...)
}

// Expired reports whether an entry created at createdAt is past ttl at now.
func Expired(createdAt, now time.Time, ttl time.Duration) bool {
	return now.Sub(createdAt) >= ttl
}
