package mock

import (
	"context"

	"github.com/fwojciec/companyintel"
)

var _ companyintel.Cache = (*Cache)(nil)

// Cache is a mock implementation of companyintel.Cache.
type Cache struct {
	GetFn func(ctx context.Context, key string) ([]byte, error)
	PutFn func(ctx context.Context, key string, value []byte) error
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.GetFn(ctx, key)
}

func (c *Cache) Put(ctx context.Context, key string, value []byte) error {
	return c.PutFn(ctx, key, value)
}
