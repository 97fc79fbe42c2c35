package goquery_test

import (
	"testing"

	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against base URL", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<nav>
	<a href="/about">About</a>
	<a href="careers">Careers</a>
</nav>
<main>
	<a href="https://example.com/products/widget">Widget</a>
</main>
</body>
</html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/about",
			"https://example.com/careers",
			"https://example.com/products/widget",
		}, links)
	})

	t.Run("filters external and subdomain links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
	<a href="https://other.com/about">Other</a>
	<a href="https://blog.example.com/news">Blog</a>
	<a href="/team">Team</a>
</body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/team"}, links)
	})

	t.Run("skips non-HTTP links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
	<a href="mailto:hello@example.com">Mail</a>
	<a href="javascript:void(0)">JS</a>
	<a href="tel:+123">Call</a>
	<a href="ftp://example.com/file">FTP</a>
	<a href="/pricing">Pricing</a>
</body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/pricing"}, links)
	})

	t.Run("deduplicates links preserving first occurrence order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
	<a href="/news">News</a>
	<a href="/about">About</a>
	<a href="/news#latest">News again</a>
</body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/news",
			"https://example.com/about",
		}, links)
	})

	t.Run("skips links back to the base page", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
	<a href="#top">Top</a>
	<a href="/about">About</a>
</body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/about"}, links)
	})

	t.Run("returns empty for page without anchors", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewLinkExtractor().ExtractLinks("<html><body><p>hi</p></body></html>", "https://example.com")

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("returns EINVALID for base URL without host", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewLinkExtractor().ExtractLinks("<html></html>", "not a url")

		require.Error(t, err)
		assert.Equal(t, companyintel.EINVALID, companyintel.ErrorCode(err))
	})
}
