package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/crawl"
	"github.com/fwojciec/companyintel/fs"
)

// Run executes the report command.
func (c *ReportCmd) Run(deps *Dependencies) error {
	result, err := deps.Reports.Generate(deps.Ctx, c.Name, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", companyintel.ErrorMessage(err))
		return err
	}

	if c.Out != "" {
		if err := fs.WriteReport(c.Out, result); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", companyintel.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved report to %s (%s)\n", c.Out, crawl.FormatBytes(len(result.Markdown)))
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(deps.Stdout, strings.TrimRight(result.Markdown, "\n"))
	fmt.Fprintln(deps.Stdout)
	printUsage(deps.Stdout, result)
	return nil
}

// printUsage writes the usage footer below a report.
func printUsage(w io.Writer, r *companyintel.ReportResult) {
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Model: %s | Pages: %d | Input: %s | Output: %s | Cost: %s | Time: %s",
		r.Model,
		r.Pages,
		crawl.FormatTokens(r.InputTokens),
		crawl.FormatTokens(r.OutputTokens),
		crawl.FormatCost(r.Cost),
		crawl.FormatDuration(r.Elapsed),
	)
	if r.Cached {
		fmt.Fprint(w, " | cached")
	}
	fmt.Fprintln(w)
}
