// Package htmltomarkdown extracts page content as Markdown with html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/goquery"
)

// Ensure Extractor implements companyintel.Extractor at compile time.
var _ companyintel.Extractor = (*Extractor)(nil)

// Extractor converts the non-boilerplate part of a page to Markdown, which
// keeps headings, lists and tables visible to the model.
type Extractor struct {
	conv *converter.Converter
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Extractor{conv: conv}
}

// Extract strips boilerplate elements and returns the page body as Markdown.
func (e *Extractor) Extract(rawHTML string) (*companyintel.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, companyintel.Errorf(companyintel.EINVALID, "empty HTML input")
	}

	doc, err := gq.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, companyintel.Errorf(companyintel.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	goquery.StripBoilerplate(doc)

	body, err := doc.Find("body").Html()
	if err != nil {
		return nil, err
	}

	md, err := e.Convert(body)
	if err != nil {
		return nil, err
	}

	return &companyintel.ExtractResult{
		Title: title,
		Text:  strings.TrimSpace(md),
	}, nil
}

// Convert transforms an HTML fragment into Markdown. An empty fragment
// converts to an empty string.
func (e *Extractor) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	return e.conv.ConvertString(html)
}
