package companyintel

import (
	"context"
	"time"
)

// ReportResult is a generated company report with usage metadata.
type ReportResult struct {
	Company      string        `json:"company"`
	URL          string        `json:"url"`
	Markdown     string        `json:"markdown"`
	Model        string        `json:"model"`
	InputTokens  int           `json:"inputTokens"`
	OutputTokens int           `json:"outputTokens"`
	Cost         float64       `json:"cost"`
	Elapsed      time.Duration `json:"elapsed"`
	Pages        int           `json:"pages"`
	CreatedAt    time.Time     `json:"createdAt"`

	// Cached is true when the result was served from the report cache.
	// Cached results carry zero cost.
	Cached bool `json:"cached"`
}

// ReportService generates company reports.
type ReportService interface {
	// Generate returns the report for the company at url, from cache when
	// a fresh one exists. Returns a *FetchError if the main page cannot be
	// fetched and a *GenerationError if the model call fails.
	Generate(ctx context.Context, company, url string) (*ReportResult, error)
}

// Completion is a language model response.
type Completion struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Completer is the language model collaborator.
type Completer interface {
	// Complete sends one system prompt and one user prompt and returns the
	// model's answer with token usage.
	Complete(ctx context.Context, system, user string) (*Completion, error)
}

// Report is a history record of a generated report.
type Report struct {
	ID           string        `json:"id"`
	Company      string        `json:"company"`
	URL          string        `json:"url"`
	Model        string        `json:"model"`
	InputTokens  int           `json:"inputTokens"`
	OutputTokens int           `json:"outputTokens"`
	Cost         float64       `json:"cost"`
	Elapsed      time.Duration `json:"elapsed"`
	Pages        int           `json:"pages"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if r.Company == "" {
		return Errorf(EINVALID, "report company required")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "report URL required")
	}
	return nil
}

// ReportStore persists report history.
type ReportStore interface {
	// CreateReport stores a report, assigning its ID and CreatedAt.
	CreateReport(ctx context.Context, report *Report) error

	// FindReports returns reports matching the filter, newest first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	Company *string `json:"company"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
