package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReport(t *testing.T) {
	t.Parallel()

	r := &companyintel.ReportResult{
		Company:   "Acme",
		URL:       "https://acme.com",
		Model:     "gemini-2.5-flash",
		Markdown:  "# Acme\n\nMakes anvils.",
		Pages:     4,
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	got := fs.FormatReport(r)

	assert.Equal(t, `---
company: Acme
source: https://acme.com
model: gemini-2.5-flash
generated: 2025-06-01
pages: 4
---

# Acme

Makes anvils.
`, got)
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	t.Run("writes report creating directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "reports", "acme.md")
		r := &companyintel.ReportResult{Company: "Acme", Markdown: "body\n"}

		err := fs.WriteReport(path, r)

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "company: Acme")
		assert.Contains(t, string(data), "body\n")
	})

	t.Run("returns EINVALID for empty path", func(t *testing.T) {
		t.Parallel()

		err := fs.WriteReport("", &companyintel.ReportResult{})

		require.Error(t, err)
		assert.Equal(t, companyintel.EINVALID, companyintel.ErrorCode(err))
	})
}
