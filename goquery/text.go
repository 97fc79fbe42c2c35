package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/companyintel"
	"golang.org/x/net/html"
)

// Ensure TextExtractor implements companyintel.Extractor at compile time.
var _ companyintel.Extractor = (*TextExtractor)(nil)

// BoilerplateSelector matches elements removed before text extraction.
const BoilerplateSelector = "script, style, noscript, template, nav, footer, header"

// TextExtractor extracts the visible text of a page.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract removes boilerplate elements and returns the remaining text with
// runs of whitespace collapsed to single spaces. Text from separate nodes is
// separated by a space so adjacent block elements do not run together.
func (e *TextExtractor) Extract(rawHTML string) (*companyintel.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, companyintel.Errorf(companyintel.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	StripBoilerplate(doc)

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var parts []string
	for _, n := range root.Nodes {
		collectText(n, &parts)
	}

	return &companyintel.ExtractResult{
		Title: title,
		Text:  strings.Join(parts, " "),
	}, nil
}

// StripBoilerplate removes BoilerplateSelector elements from doc.
func StripBoilerplate(doc *goquery.Document) {
	doc.Find(BoilerplateSelector).Remove()
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if s := strings.Join(strings.Fields(n.Data), " "); s != "" {
			*parts = append(*parts, s)
		}
		return
	case html.CommentNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
