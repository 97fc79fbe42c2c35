package main

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/fwojciec/companyintel"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Reports companyintel.ReportService
	Links   LinkPreviewer
	History companyintel.ReportStore
}

// LinkPreviewer returns the related pages a report for url would fetch.
type LinkPreviewer interface {
	Candidates(ctx context.Context, url string) ([]companyintel.LinkCandidate, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals `embed:""`

	Report  ReportCmd  `cmd:"" help:"Generate a company report"`
	Links   LinksCmd   `cmd:"" help:"Preview the related pages a report would use"`
	History HistoryCmd `cmd:"" help:"List previously generated reports"`
}

// Globals are flags shared by every command.
type Globals struct {
	CacheDir  string        `name:"cache-dir" env:"COMPANYINTEL_CACHE_DIR" help:"Directory for the file cache"`
	Cache     string        `enum:"sqlite,file,memory" default:"sqlite" help:"Cache backend (sqlite, file, memory)"`
	CacheTTL  time.Duration `name:"cache-ttl" default:"24h" help:"How long cached pages and reports stay valid"`
	DB        string        `name:"db" env:"COMPANYINTEL_DB" help:"SQLite database path"`
	Provider  string        `enum:"gemini,anthropic" default:"gemini" env:"COMPANYINTEL_PROVIDER" help:"Language model provider (gemini, anthropic)"`
	Model     string        `env:"COMPANYINTEL_MODEL" help:"Model name (defaults to the provider's default)"`
	Pricing   string        `help:"YAML file with per-model prices in USD per million tokens"`
	Workers   int           `default:"5" help:"Concurrent related-page fetches"`
	MaxLinks  int           `name:"max-links" default:"5" help:"Maximum related pages per report"`
	MaxChars  int           `name:"max-chars" default:"50000" help:"Maximum characters kept per page"`
	Timeout   time.Duration `default:"10s" help:"Timeout per page fetch attempt"`
	Retries   int           `default:"3" help:"Fetch attempts per page"`
	Browser   bool          `help:"Render pages with headless Chrome"`
	Probe     bool          `help:"Use headless Chrome only when it renders meaningfully more text than HTTP"`
	Chrome    string        `env:"COMPANYINTEL_CHROME" help:"Chrome executable for --browser and --probe (found or downloaded when empty)"`
	Extractor string        `enum:"text,article,readable,markdown" default:"text" help:"Text extractor (text, article, readable, markdown)"`
	RPS       float64       `name:"rps" default:"0" help:"Requests per second per domain (0 = unlimited)"`
	Verbose   bool          `short:"v" help:"Enable debug logging"`
}

// PageCacheSettings returns the flags that change what a fetched page
// contains. Cached pages are keyed by them.
func (g *Globals) PageCacheSettings() []string {
	fetch := "http"
	switch {
	case g.Browser:
		fetch = "browser"
	case g.Probe:
		fetch = "probe"
	}
	return []string{
		"fetch=" + fetch,
		"extractor=" + g.Extractor,
		"max-chars=" + strconv.Itoa(g.MaxChars),
	}
}

// ReportCacheSettings returns the flags that change a generated report,
// with model being the resolved model name. Cached reports are keyed by
// them.
func (g *Globals) ReportCacheSettings(model string) []string {
	return append(g.PageCacheSettings(),
		"provider="+g.Provider,
		"model="+model,
		"max-links="+strconv.Itoa(g.MaxLinks),
	)
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	Name string `arg:"" help:"Company name"`
	URL  string `arg:"" help:"Company website URL"`
	JSON bool   `help:"Print the report as JSON"`
	Out  string `short:"o" help:"Also write the report to this markdown file"`
}

// LinksCmd is the "links" subcommand.
type LinksCmd struct {
	URL string `arg:"" help:"Company website URL"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Company string `help:"Only show reports for this company"`
	Limit   int    `short:"n" default:"20" help:"Maximum reports to show"`
}
