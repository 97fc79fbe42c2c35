package report

import (
	"fmt"
	"strings"

	"github.com/fwojciec/companyintel"
)

// DefaultSystemPrompt instructs the model how to write the report.
const DefaultSystemPrompt = `You are an assistant that analyzes the contents of several relevant pages from a company website
and creates a short report about the company for a sales team preparing to approach it.
Respond in markdown.
Include details of company objectives, priorities and initiatives or plans if you have the information.
Format the report with clear sections and bullet points for readability.`

// BuildUserPrompt assembles the user prompt from the landing page followed by
// the related pages in the order given.
func BuildUserPrompt(company string, main *companyintel.PageContent, related []*companyintel.PageContent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are looking at a company called: %s\n", company)
	b.WriteString("Here are the contents of its landing page and other relevant pages; ")
	b.WriteString("use this information to build a short report about the company.\n")

	writePage(&b, "Landing page", main)
	for _, page := range related {
		writePage(&b, "Related page", page)
	}
	return b.String()
}

func writePage(b *strings.Builder, label string, page *companyintel.PageContent) {
	fmt.Fprintf(b, "\n## %s: %s\n", label, page.URL)
	if page.Title != "" {
		fmt.Fprintf(b, "Title: %s\n", page.Title)
	}
	b.WriteString(page.Text)
	b.WriteString("\n")
}
