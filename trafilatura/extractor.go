// Package trafilatura extracts the main article text of a page with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/companyintel"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements companyintel.Extractor at compile time.
var _ companyintel.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content as plain text
// with whitespace collapsed.
func (e *Extractor) Extract(rawHTML string) (*companyintel.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, companyintel.Errorf(companyintel.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	return &companyintel.ExtractResult{
		Title: result.Metadata.Title,
		Text:  strings.Join(strings.Fields(result.ContentText), " "),
	}, nil
}
