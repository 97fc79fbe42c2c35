// Package crawl fetches company pages: a retrying page scraper, a caching
// decorator and a bounded fan-out over related links.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/companyintel"
)

var _ companyintel.PageFetcher = (*Scraper)(nil)

// Scraper fetches a URL with retry, extracts its text and links and
// truncates the text to MaxChars.
type Scraper struct {
	Fetcher       companyintel.Fetcher
	Extractor     companyintel.Extractor
	LinkExtractor companyintel.LinkExtractor // optional

	// MaxChars caps extracted text. Zero selects companyintel.DefaultMaxChars;
	// a negative value disables truncation.
	MaxChars int

	// RetryDelays are the waits between attempts. Nil selects
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	Logger *slog.Logger
	Now    func() time.Time
}

// FetchPage implements companyintel.PageFetcher.
func (s *Scraper) FetchPage(ctx context.Context, url string) (*companyintel.PageContent, error) {
	if err := companyintel.ValidateURL(url); err != nil {
		return nil, err
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	html, err := FetchWithRetry(ctx, url, s.Fetcher.Fetch, s.Logger, delays)
	if err != nil {
		return nil, err
	}

	extracted, err := s.Extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", url, err)
	}

	var links []string
	if s.LinkExtractor != nil {
		links, err = s.LinkExtractor.ExtractLinks(html, url)
		if err != nil && s.Logger != nil {
			s.Logger.Warn("extract links", "url", url, "err", err)
		}
	}

	maxChars := s.MaxChars
	if maxChars == 0 {
		maxChars = companyintel.DefaultMaxChars
	}

	return &companyintel.PageContent{
		URL:       url,
		Title:     extracted.Title,
		Text:      companyintel.TruncateText(extracted.Text, maxChars),
		Links:     links,
		FetchedAt: s.now(),
	}, nil
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
