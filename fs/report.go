package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/companyintel"
)

// FormatReport formats a report as Markdown with YAML frontmatter.
func FormatReport(r *companyintel.ReportResult) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("company: ")
	b.WriteString(r.Company)
	b.WriteString("\nsource: ")
	b.WriteString(r.URL)
	b.WriteString("\nmodel: ")
	b.WriteString(r.Model)
	b.WriteString("\ngenerated: ")
	b.WriteString(r.CreatedAt.UTC().Format("2006-01-02"))
	fmt.Fprintf(&b, "\npages: %d", r.Pages)
	b.WriteString("\n---\n\n")
	b.WriteString(r.Markdown)
	if !strings.HasSuffix(r.Markdown, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// WriteReport writes the formatted report to path, creating parent
// directories. The file is replaced atomically.
func WriteReport(path string, r *companyintel.ReportResult) error {
	if path == "" {
		return companyintel.Errorf(companyintel.EINVALID, "output path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return writeFileAtomic(path, []byte(FormatReport(r)))
}
