// Package readability extracts the readable text of a page with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/companyintel"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements companyintel.Extractor at compile time.
var _ companyintel.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article text with whitespace
// collapsed.
func (e *Extractor) Extract(rawHTML string) (*companyintel.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, companyintel.Errorf(companyintel.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &companyintel.ExtractResult{
		Title: article.Title,
		Text:  strings.Join(strings.Fields(article.TextContent), " "),
	}, nil
}
