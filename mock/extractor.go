package mock

import "github.com/fwojciec/companyintel"

var _ companyintel.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of companyintel.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*companyintel.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*companyintel.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ companyintel.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of companyintel.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
