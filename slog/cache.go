package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/companyintel"
)

// Ensure LoggingCache implements companyintel.Cache.
var _ companyintel.Cache = (*LoggingCache)(nil)

// LoggingCache wraps a Cache with logging. Hits and misses are logged at
// debug level; any other failure is logged as a warning, since callers
// treat cache errors as misses and never surface them.
type LoggingCache struct {
	next   companyintel.Cache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next companyintel.Cache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs hit or miss.
func (c *LoggingCache) Get(ctx context.Context, key string) (value []byte, err error) {
	defer func(begin time.Time) {
		switch {
		case err == nil:
			c.logger.Debug("cache hit", "key", key, "bytes", len(value), "duration", time.Since(begin))
		case companyintel.ErrorCode(err) == companyintel.ENOTFOUND:
			c.logger.Debug("cache miss", "key", key, "duration", time.Since(begin))
		default:
			c.logger.Warn("cache read failed", "key", key, "duration", time.Since(begin), "err", err)
		}
	}(time.Now())
	return c.next.Get(ctx, key)
}

// Put delegates to the wrapped cache and logs the write.
func (c *LoggingCache) Put(ctx context.Context, key string, value []byte) (err error) {
	defer func(begin time.Time) {
		if err != nil {
			c.logger.Warn("cache write failed", "key", key, "bytes", len(value), "duration", time.Since(begin), "err", err)
			return
		}
		c.logger.Debug("cache put", "key", key, "bytes", len(value), "duration", time.Since(begin))
	}(time.Now())
	return c.next.Put(ctx, key, value)
}
