package mock

import (
	"context"

	"github.com/fwojciec/companyintel"
)

var _ companyintel.Completer = (*Completer)(nil)

// Completer is a mock implementation of companyintel.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, system, user string) (*companyintel.Completion, error)
}

func (c *Completer) Complete(ctx context.Context, system, user string) (*companyintel.Completion, error) {
	return c.CompleteFn(ctx, system, user)
}

var _ companyintel.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of companyintel.ReportService.
type ReportService struct {
	GenerateFn func(ctx context.Context, company, url string) (*companyintel.ReportResult, error)
}

func (s *ReportService) Generate(ctx context.Context, company, url string) (*companyintel.ReportResult, error) {
	return s.GenerateFn(ctx, company, url)
}

var _ companyintel.ReportStore = (*ReportStore)(nil)

// ReportStore is a mock implementation of companyintel.ReportStore.
type ReportStore struct {
	CreateReportFn func(ctx context.Context, report *companyintel.Report) error
	FindReportsFn  func(ctx context.Context, filter companyintel.ReportFilter) ([]*companyintel.Report, error)
}

func (s *ReportStore) CreateReport(ctx context.Context, report *companyintel.Report) error {
	return s.CreateReportFn(ctx, report)
}

func (s *ReportStore) FindReports(ctx context.Context, filter companyintel.ReportFilter) ([]*companyintel.Report, error) {
	return s.FindReportsFn(ctx, filter)
}
