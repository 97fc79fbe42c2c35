package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/companyintel"
)

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	candidates, err := deps.Links.Candidates(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", companyintel.ErrorMessage(err))
		return err
	}

	if len(candidates) == 0 {
		fmt.Fprintf(deps.Stdout, "No relevant links found on %s\n", c.URL)
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, cand := range candidates {
		fmt.Fprintf(tw, "%s\t%s\n", cand.Category, cand.URL)
	}
	return tw.Flush()
}
