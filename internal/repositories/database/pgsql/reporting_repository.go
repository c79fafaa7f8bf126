package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for report snapshots.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// SaveReport persists a report snapshot. Regenerating a report for the same
// (organization, type, period) overwrites the previous snapshot in place.
func (r *PgxReportingRepository) SaveReport(ctx context.Context, report domain.Report) error {
	data, err := json.Marshal(report.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal report data: %w", err)
	}
	query := `
		INSERT INTO reports (report_id, organization_id, report_type, period_start, period_end, generated_by, generated_at, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (organization_id, report_type, period_start, period_end) DO UPDATE
		SET report_id = EXCLUDED.report_id, generated_by = EXCLUDED.generated_by,
		    generated_at = EXCLUDED.generated_at, data = EXCLUDED.data;
	`
	_, err = r.Pool.Exec(ctx, query,
		report.ReportID, report.OrganizationID, report.ReportType,
		report.PeriodStart, report.PeriodEnd, report.GeneratedBy, report.GeneratedAt, data,
	)
	return translateError(err, "save report")
}

// FindReportByID retrieves a stored report snapshot.
func (r *PgxReportingRepository) FindReportByID(ctx context.Context, organizationID, reportID string) (*domain.Report, error) {
	query := `
		SELECT report_id, organization_id, report_type, period_start, period_end, generated_by, generated_at, data
		FROM reports
		WHERE organization_id = $1 AND report_id = $2;
	`
	var report domain.Report
	var data []byte
	err := r.Pool.QueryRow(ctx, query, organizationID, reportID).Scan(
		&report.ReportID, &report.OrganizationID, &report.ReportType,
		&report.PeriodStart, &report.PeriodEnd, &report.GeneratedBy, &report.GeneratedAt, &data,
	)
	if err != nil {
		return nil, translateError(err, "find report "+reportID)
	}
	if err := json.Unmarshal(data, &report.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report data: %w", err)
	}
	return &report, nil
}

// ListReports retrieves stored reports of an organization, newest first.
func (r *PgxReportingRepository) ListReports(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Report, error) {
	query := `
		SELECT report_id, organization_id, report_type, period_start, period_end, generated_by, generated_at, data
		FROM reports
		WHERE organization_id = $1
		ORDER BY generated_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list reports")
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var report domain.Report
		var data []byte
		if err := rows.Scan(
			&report.ReportID, &report.OrganizationID, &report.ReportType,
			&report.PeriodStart, &report.PeriodEnd, &report.GeneratedBy, &report.GeneratedAt, &data,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		if err := json.Unmarshal(data, &report.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report data: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// GetTrialBalanceData aggregates per-account debit and credit totals over
// ledger entries dated within [from, to].
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, organizationID string, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(le.debit), 0) AS debit,
		       COALESCE(SUM(le.credit), 0) AS credit
		FROM ledger_entries le
		JOIN accounts a ON a.account_id = le.account_id
		WHERE le.organization_id = $1 AND le.entry_date >= $2 AND le.entry_date <= $3
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, translateError(err, "trial balance query")
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
