package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffDelays(t *testing.T) {
	t.Parallel()

	t.Run("doubles from base", func(t *testing.T) {
		t.Parallel()

		delays := crawl.BackoffDelays(4, time.Second)

		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, delays)
	})

	t.Run("default gives 2s and 4s", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, crawl.DefaultRetryDelays())
	})

	t.Run("single attempt has no delays", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, crawl.BackoffDelays(1, time.Second))
		assert.Empty(t, crawl.BackoffDelays(0, time.Second))
	})
}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("succeeds after transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "ok", nil
		}

		html, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns FetchError with last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			if calls == 3 {
				return "", errors.New("HTTP 503")
			}
			return "", errors.New("timeout")
		}

		_, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, []time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, 3, calls)

		var fetchErr *companyintel.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "https://example.com", fetchErr.URL)
		assert.Equal(t, 3, fetchErr.Attempts)
		assert.EqualError(t, fetchErr.Err, "HTTP 503")
		assert.Equal(t, companyintel.EFETCH, companyintel.ErrorCode(err))
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			cancel()
			return "", errors.New("boom")
		}

		_, err := crawl.FetchWithRetry(ctx, "https://example.com", fetch, nil, []time.Duration{time.Hour})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
