package report_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/report"
	"github.com/stretchr/testify/assert"
)

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	main := &companyintel.PageContent{URL: "https://acme.com", Title: "Acme Corp", Text: "We build rockets."}
	related := []*companyintel.PageContent{
		{URL: "https://acme.com/careers", Text: "We are hiring."},
	}

	prompt := report.BuildUserPrompt("Acme", main, related)

	assert.True(t, strings.HasPrefix(prompt, "You are looking at a company called: Acme\n"))
	assert.Contains(t, prompt, "## Landing page: https://acme.com\nTitle: Acme Corp\nWe build rockets.\n")
	assert.Contains(t, prompt, "## Related page: https://acme.com/careers\nWe are hiring.\n")
	assert.Less(t, strings.Index(prompt, "Landing page"), strings.Index(prompt, "Related page"))
}

func TestBuildUserPrompt_NoRelatedPages(t *testing.T) {
	t.Parallel()

	main := &companyintel.PageContent{URL: "https://acme.com", Text: "Hello."}

	prompt := report.BuildUserPrompt("Acme", main, nil)

	assert.NotContains(t, prompt, "Related page")
	assert.NotContains(t, prompt, "Title:")
}
