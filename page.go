package companyintel

import (
	"context"
	"net/url"
	"time"
)

// DefaultMaxChars is the default cap on extracted text per page.
const DefaultMaxChars = 50000

// TruncationMarker is appended to page text that was cut at the cap.
const TruncationMarker = "... [content truncated]"

// PageContent is the extracted text of a fetched page.
type PageContent struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`

	// Links holds absolute same-host http(s) URLs in document order,
	// without duplicates.
	Links []string `json:"links,omitempty"`

	FetchedAt time.Time `json:"fetchedAt"`
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the URL and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	Title string

	// Text is the visible text with boilerplate (script, style, nav,
	// footer) removed and whitespace collapsed.
	Text string
}

// Extractor extracts readable text from HTML pages.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// LinkExtractor extracts outbound links from HTML pages.
type LinkExtractor interface {
	// ExtractLinks returns absolute http(s) URLs on the same host as
	// baseURL, in document order, without duplicates.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// PageFetcher fetches a page and returns its extracted content.
// Implementations hide retry, extraction and truncation.
type PageFetcher interface {
	// FetchPage returns a *FetchError if the page could not be retrieved
	// and EINVALID if url is not an absolute http(s) URL.
	FetchPage(ctx context.Context, url string) (*PageContent, error)
}

// ValidateURL returns EINVALID unless raw is an absolute http or https URL
// with a host.
func ValidateURL(raw string) error {
	if raw == "" {
		return Errorf(EINVALID, "URL required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "URL must start with http:// or https://: %s", raw)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "URL has no host: %s", raw)
	}
	return nil
}

// TruncateText cuts text to at most limit characters and appends
// TruncationMarker when anything was removed. Characters are counted as
// Unicode code points. A non-positive limit disables truncation.
func TruncateText(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i] + TruncationMarker
		}
		n++
	}
	return text
}
