package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/companyintel"
)

// Ensure LoggingCompleter implements companyintel.Completer.
var _ companyintel.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging.
type LoggingCompleter struct {
	next   companyintel.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next companyintel.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs token usage.
func (c *LoggingCompleter) Complete(ctx context.Context, system, user string) (completion *companyintel.Completion, err error) {
	defer func(begin time.Time) {
		var model string
		var in, out int
		if completion != nil {
			model = completion.Model
			in = completion.InputTokens
			out = completion.OutputTokens
		}
		c.logger.Info("model call",
			"model", model,
			"prompt_chars", len(user),
			"input_tokens", in,
			"output_tokens", out,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, system, user)
}

// Ensure LoggingReportService implements companyintel.ReportService.
var _ companyintel.ReportService = (*LoggingReportService)(nil)

// LoggingReportService wraps a ReportService with logging.
type LoggingReportService struct {
	next   companyintel.ReportService
	logger *slog.Logger
}

// NewLoggingReportService creates a new LoggingReportService.
func NewLoggingReportService(next companyintel.ReportService, logger *slog.Logger) *LoggingReportService {
	return &LoggingReportService{next: next, logger: logger}
}

// Generate delegates to the wrapped service and logs the outcome.
func (s *LoggingReportService) Generate(ctx context.Context, company, url string) (result *companyintel.ReportResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"company", company,
			"url", url,
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"cached", result.Cached,
				"pages", result.Pages,
				"cost", result.Cost,
			)
		}
		if err != nil {
			attrs = append(attrs, "code", companyintel.ErrorCode(err), "err", err)
		}
		s.logger.Info("generate report", attrs...)
	}(time.Now())
	return s.next.Generate(ctx, company, url)
}

// Ensure LoggingReportStore implements companyintel.ReportStore.
var _ companyintel.ReportStore = (*LoggingReportStore)(nil)

// LoggingReportStore wraps a ReportStore with debug logging.
type LoggingReportStore struct {
	next   companyintel.ReportStore
	logger *slog.Logger
}

// NewLoggingReportStore creates a new LoggingReportStore.
func NewLoggingReportStore(next companyintel.ReportStore, logger *slog.Logger) *LoggingReportStore {
	return &LoggingReportStore{next: next, logger: logger}
}

// CreateReport delegates to the wrapped store and logs the new ID.
func (s *LoggingReportStore) CreateReport(ctx context.Context, report *companyintel.Report) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create report",
			"id", report.ID,
			"company", report.Company,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateReport(ctx, report)
}

// FindReports delegates to the wrapped store and logs the result count.
func (s *LoggingReportStore) FindReports(ctx context.Context, filter companyintel.ReportFilter) (reports []*companyintel.Report, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find reports",
			"count", len(reports),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReports(ctx, filter)
}
