package crawl

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/companyintel"
)

var _ companyintel.PageFetcher = (*CachedFetcher)(nil)

// CachedFetcher serves pages from Cache and fills it on a miss.
// Cache failures never fail a fetch: a failed read is a miss and a failed
// write is dropped.
type CachedFetcher struct {
	Next  companyintel.PageFetcher
	Cache companyintel.Cache

	// Settings are the fetch and extraction settings that shape a page,
	// such as extractor and character cap. They are part of the cache key.
	Settings []string
}

// FetchPage implements companyintel.PageFetcher.
func (f *CachedFetcher) FetchPage(ctx context.Context, url string) (*companyintel.PageContent, error) {
	key := companyintel.CacheKey(companyintel.CacheKindPage, append([]string{url}, f.Settings...)...)

	if data, err := f.Cache.Get(ctx, key); err == nil {
		var page companyintel.PageContent
		if err := json.Unmarshal(data, &page); err == nil {
			return &page, nil
		}
	}

	page, err := f.Next.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(page); err == nil {
		_ = f.Cache.Put(ctx, key, data)
	}

	return page, nil
}
