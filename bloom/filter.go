// Package bloom provides URL deduplication using Bloom filters.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter records URLs seen during a report run.
// URLs are normalized before hashing: the fragment is dropped and a
// trailing slash on the path is ignored, so "https://a.com/about/" and
// "https://a.com/about#team" are the same URL.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(Normalize(url))
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(Normalize(url))
}

// TestAndAdd reports whether the URL might already be in the filter and
// adds it.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(Normalize(url))
}

// Normalize strips the fragment and a trailing slash from url.
func Normalize(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		url = url[:idx]
	}
	return strings.TrimSuffix(url, "/")
}
