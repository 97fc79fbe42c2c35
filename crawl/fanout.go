package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the default size of the related-page fetch pool.
const DefaultWorkers = 5

// candidateFalsePositiveRate sizes the dedup filter in SelectCandidates.
const candidateFalsePositiveRate = 0.0001

// LinkError records a related page that could not be fetched.
type LinkError struct {
	Candidate companyintel.LinkCandidate
	Err       error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s link %s: %v", e.Candidate.Category, e.Candidate.URL, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

// FanOutResult holds the pages fetched by FanOut and the links that failed.
// Both slices are in completion order.
type FanOutResult struct {
	Pages  []*companyintel.PageContent
	Errors []*LinkError
}

// FanOut fetches related pages concurrently over a bounded pool.
type FanOut struct {
	Fetcher     companyintel.PageFetcher
	RateLimiter companyintel.DomainLimiter // optional

	// Workers bounds concurrent fetches. Zero selects DefaultWorkers.
	Workers int

	Logger *slog.Logger
}

// fanOutResult holds the outcome of fetching a single candidate.
type fanOutResult struct {
	candidate companyintel.LinkCandidate
	page      *companyintel.PageContent
	err       error
}

// FetchAll fetches every candidate and returns the successful pages with
// the per-link failures. A failed link never fails the call.
//
// Fetches run on a context detached from ctx's cancellation: once
// submitted, a fetch runs to completion bounded by its own timeout and
// retries, even if the caller has gone away.
func (f *FanOut) FetchAll(ctx context.Context, candidates []companyintel.LinkCandidate) *FanOutResult {
	result := &FanOutResult{}
	if len(candidates) == 0 {
		return result
	}

	ctx = context.WithoutCancel(ctx)
	logger := f.logger()

	workers := f.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	resultCh := make(chan fanOutResult, len(candidates))

	var g errgroup.Group
	g.SetLimit(workers)

	go func() {
		for _, c := range candidates {
			g.Go(func() error {
				page, err := f.fetch(ctx, c.URL)
				resultCh <- fanOutResult{candidate: c, page: page, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	for r := range resultCh {
		if r.err != nil {
			logger.Warn("related page failed", "url", r.candidate.URL, "category", r.candidate.Category, "err", r.err)
			result.Errors = append(result.Errors, &LinkError{Candidate: r.candidate, Err: r.err})
			continue
		}
		result.Pages = append(result.Pages, r.page)
	}

	return result
}

func (f *FanOut) fetch(ctx context.Context, rawURL string) (*companyintel.PageContent, error) {
	if f.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, companyintel.Errorf(companyintel.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := f.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}
	return f.Fetcher.FetchPage(ctx, rawURL)
}

func (f *FanOut) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SelectCandidates returns at most limit candidates, skipping mainURL and
// any URL already selected. URLs are compared after bloom.Normalize, and
// the comparison is exact. Input order is preserved. A non-positive limit
// selects nothing.
func SelectCandidates(candidates []companyintel.LinkCandidate, mainURL string, limit int) []companyintel.LinkCandidate {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}

	seen := newURLSet(len(candidates) + 1)
	seen.add(mainURL)

	var selected []companyintel.LinkCandidate
	for _, c := range candidates {
		if len(selected) == limit {
			break
		}
		if !seen.add(c.URL) {
			continue
		}
		selected = append(selected, c)
	}
	return selected
}

// urlSet is an exact set of normalized URLs. The bloom filter answers the
// common "never seen" case; its positives are confirmed against the map.
type urlSet struct {
	filter *bloom.Filter
	urls   map[string]struct{}
}

func newURLSet(n int) *urlSet {
	return &urlSet{
		filter: bloom.NewFilter(uint(n), candidateFalsePositiveRate),
		urls:   make(map[string]struct{}, n),
	}
}

// add inserts url and reports whether it was new.
func (s *urlSet) add(url string) bool {
	key := bloom.Normalize(url)
	if s.filter.TestAndAdd(key) {
		if _, ok := s.urls[key]; ok {
			return false
		}
	}
	s.urls[key] = struct{}{}
	return true
}
