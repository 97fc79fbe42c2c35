package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/companyintel"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ companyintel.ReportStore = (*ReportStore)(nil)

// ReportStore implements companyintel.ReportStore using SQLite.
type ReportStore struct {
	db  *DB
	Now func() time.Time
}

// NewReportStore creates a new ReportStore.
func NewReportStore(db *DB) *ReportStore {
	return &ReportStore{db: db}
}

// CreateReport stores a report with a generated ID and timestamp.
func (s *ReportStore) CreateReport(ctx context.Context, report *companyintel.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	report.ID = uuid.New().String()
	if s.Now != nil {
		report.CreatedAt = s.Now().UTC()
	} else {
		report.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, company, url, model, input_tokens, output_tokens, cost, elapsed_ms, pages, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.Company, report.URL, report.Model, report.InputTokens, report.OutputTokens,
		report.Cost, report.Elapsed.Milliseconds(), report.Pages, formatTime(report.CreatedAt))

	return err
}

// FindReports retrieves reports matching the filter, newest first.
// The company filter is case-insensitive.
func (s *ReportStore) FindReports(ctx context.Context, filter companyintel.ReportFilter) ([]*companyintel.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, company, url, model, input_tokens, output_tokens, cost, elapsed_ms, pages, created_at
		FROM reports WHERE 1=1`)

	if filter.Company != nil {
		query.WriteString(" AND company = ? COLLATE NOCASE")
		args = append(args, strings.TrimSpace(*filter.Company))
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*companyintel.Report
	for rows.Next() {
		var r companyintel.Report
		var elapsedMS int64
		var createdAt string

		if err := rows.Scan(&r.ID, &r.Company, &r.URL, &r.Model, &r.InputTokens, &r.OutputTokens,
			&r.Cost, &elapsedMS, &r.Pages, &createdAt); err != nil {
			return nil, err
		}

		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if r.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		reports = append(reports, &r)
	}

	return reports, rows.Err()
}
