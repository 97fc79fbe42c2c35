package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements companyintel.Extractor at compile time.
var _ companyintel.Extractor = (*htmltomarkdown.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("converts body to markdown without boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Acme Products</title><script>var x = 1;</script></head>
<body>
<header>Top bar</header>
<nav><a href="/">Home</a></nav>
<main>
<h1>Products</h1>
<ul><li>Rockets</li><li>Anvils</li></ul>
</main>
<footer>Copyright</footer>
</body>
</html>`

		result, err := htmltomarkdown.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Acme Products", result.Title)
		assert.Contains(t, result.Text, "# Products")
		assert.Contains(t, result.Text, "- Rockets")
		assert.Contains(t, result.Text, "- Anvils")
		assert.NotContains(t, result.Text, "Top bar")
		assert.NotContains(t, result.Text, "Home")
		assert.NotContains(t, result.Text, "Copyright")
		assert.NotContains(t, result.Text, "var x")
	})

	t.Run("keeps tables", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><table>
<thead><tr><th>Plan</th><th>Price</th></tr></thead>
<tbody><tr><td>Team</td><td>$10</td></tr></tbody>
</table></body></html>`

		result, err := htmltomarkdown.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Plan")
		assert.Contains(t, result.Text, "Team")
		assert.Contains(t, result.Text, "|")
	})

	t.Run("returns empty text for empty body", func(t *testing.T) {
		t.Parallel()

		result, err := htmltomarkdown.NewExtractor().Extract("<html><body><nav>only nav</nav></body></html>")

		require.NoError(t, err)
		assert.Empty(t, result.Text)
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewExtractor().Extract("")

		require.Error(t, err)
		assert.Equal(t, companyintel.EINVALID, companyintel.ErrorCode(err))
	})
}

func TestExtractor_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewExtractor().Convert(`<h1>Title</h1><h2>Subtitle</h2>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewExtractor().Convert(`<p>Visit <a href="https://example.com">Example</a> for more info.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("converts bold and italic", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewExtractor().Convert(`<p><strong>Bold</strong> and <em>italic</em> text.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**Bold**")
		assert.Contains(t, md, "*italic*")
	})

	t.Run("returns empty string for blank fragment", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewExtractor().Convert("   ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}
