package crawl

import (
	"context"

	"github.com/fwojciec/companyintel"
)

// ContentDiffers compares the text extracted from HTTP-fetched HTML with the
// text extracted from browser-rendered HTML. It returns true when the
// rendered text is more than 50% longer, or when either extraction fails.
func ContentDiffers(httpHTML, renderedHTML string, extractor companyintel.Extractor) bool {
	httpResult, err := extractor.Extract(httpHTML)
	if err != nil {
		return true
	}
	renderedResult, err := extractor.Extract(renderedHTML)
	if err != nil {
		return true
	}

	httpLen := len(httpResult.Text)
	renderedLen := len(renderedResult.Text)
	if httpLen == 0 {
		return renderedLen > 0
	}
	return float64(renderedLen) > float64(httpLen)*1.5
}

// ProbeFetcher fetches url with both fetchers and returns the one to use
// for the rest of the run:
//   - HTTP fetch fails → browser
//   - browser fetch fails → HTTP
//   - rendered page carries meaningfully more text → browser
//   - otherwise → HTTP
//
// ProbeFetcher never fails.
func ProbeFetcher(ctx context.Context, url string, httpFetcher, browserFetcher companyintel.Fetcher, extractor companyintel.Extractor) companyintel.Fetcher {
	httpHTML, err := httpFetcher.Fetch(ctx, url)
	if err != nil {
		return browserFetcher
	}

	renderedHTML, err := browserFetcher.Fetch(ctx, url)
	if err != nil {
		return httpFetcher
	}

	if ContentDiffers(httpHTML, renderedHTML, extractor) {
		return browserFetcher
	}
	return httpFetcher
}
