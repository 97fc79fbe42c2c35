package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/companyintel"
)

// Retry defaults. With these values a failing URL is tried three times
// with waits of 2s and 4s in between.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return BackoffDelays(DefaultMaxAttempts, DefaultBaseDelay)
}

// BackoffDelays returns the waits between attempts for an exponential
// backoff with base 2: base, 2*base, 4*base and so on. The result has
// attempts-1 entries; attempts below 1 are treated as 1.
func BackoffDelays(attempts int, base time.Duration) []time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	delays := make([]time.Duration, attempts-1)
	d := base
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// FetchWithRetry attempts to fetch a URL, waiting delays[i] after failed
// attempt i. It makes len(delays)+1 attempts in total. When every attempt
// fails, or ctx ends while waiting, it returns a *companyintel.FetchError
// carrying the last error. The logger, if provided, receives one line per
// retry.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Warn("retry fetch", "url", url, "attempt", attempt+2, "wait", delays[attempt], "err", err)
		}

		select {
		case <-ctx.Done():
			return "", &companyintel.FetchError{URL: url, Attempts: attempt + 1, Err: ctx.Err()}
		case <-time.After(delays[attempt]):
		}
	}

	return "", &companyintel.FetchError{URL: url, Attempts: maxAttempts, Err: lastErr}
}
