package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/crawl"
)

// maxURLWidth bounds the URL column of the history table.
const maxURLWidth = 50

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := companyintel.ReportFilter{Limit: c.Limit}
	if c.Company != "" {
		filter.Company = &c.Company
	}

	reports, err := deps.History.FindReports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", companyintel.ErrorMessage(err))
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found. Use 'companyintel report' to create one.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d pages\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Company,
			crawl.TruncateURL(r.URL, maxURLWidth),
			r.Model,
			r.Pages,
			crawl.FormatCost(r.Cost),
		)
	}
	return tw.Flush()
}
