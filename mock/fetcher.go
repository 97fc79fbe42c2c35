package mock

import (
	"context"

	"github.com/fwojciec/companyintel"
)

var _ companyintel.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of companyintel.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ companyintel.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of companyintel.PageFetcher.
type PageFetcher struct {
	FetchPageFn func(ctx context.Context, url string) (*companyintel.PageContent, error)
}

func (f *PageFetcher) FetchPage(ctx context.Context, url string) (*companyintel.PageContent, error) {
	return f.FetchPageFn(ctx, url)
}

var _ companyintel.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of companyintel.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
