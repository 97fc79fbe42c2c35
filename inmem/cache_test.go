package inmem_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for missing key", func(t *testing.T) {
		t.Parallel()

		c := inmem.NewCache()

		_, err := c.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, companyintel.ENOTFOUND, companyintel.ErrorCode(err))
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		c := inmem.NewCache()
		require.NoError(t, c.Put(context.Background(), "k", []byte("v")))

		got, err := c.Get(context.Background(), "k")

		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)
	})

	t.Run("zero value is usable", func(t *testing.T) {
		t.Parallel()

		c := &inmem.Cache{TTL: time.Hour}

		_, err := c.Get(context.Background(), "k")
		assert.Equal(t, companyintel.ENOTFOUND, companyintel.ErrorCode(err))

		require.NoError(t, c.Put(context.Background(), "k", []byte("v")))
		got, err := c.Get(context.Background(), "k")

		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("put replaces previous value", func(t *testing.T) {
		t.Parallel()

		c := inmem.NewCache()
		require.NoError(t, c.Put(context.Background(), "k", []byte("old")))
		require.NoError(t, c.Put(context.Background(), "k", []byte("new")))

		got, err := c.Get(context.Background(), "k")

		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("expires entries lazily after TTL", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		c := inmem.NewCache()
		c.TTL = time.Hour
		c.Now = func() time.Time { return now }

		require.NoError(t, c.Put(context.Background(), "k", []byte("v")))

		now = now.Add(59 * time.Minute)
		_, err := c.Get(context.Background(), "k")
		require.NoError(t, err)

		now = now.Add(time.Minute)
		_, err = c.Get(context.Background(), "k")
		require.Error(t, err)
		assert.Equal(t, companyintel.ENOTFOUND, companyintel.ErrorCode(err))
		assert.Equal(t, 1, c.Len(), "expired entry stays until overwritten")
	})

	t.Run("expired entry can be overwritten", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		c := inmem.NewCache()
		c.Now = func() time.Time { return now }

		require.NoError(t, c.Put(context.Background(), "k", []byte("old")))
		now = now.Add(companyintel.DefaultCacheTTL)
		require.NoError(t, c.Put(context.Background(), "k", []byte("new")))

		got, err := c.Get(context.Background(), "k")

		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		t.Parallel()

		c := inmem.NewCache()
		require.NoError(t, c.Put(context.Background(), "k", []byte("abc")))

		got, err := c.Get(context.Background(), "k")
		require.NoError(t, err)
		got[0] = 'x'

		again, err := c.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})
}
