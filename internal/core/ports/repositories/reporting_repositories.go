package repositories

import (
	"context"
	"time"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// ReportingRepository defines storage for report snapshots and report queries
type ReportingRepository interface {
	// SaveReport persists a report snapshot. Regenerating a report for the same
	// (organization, type, period) overwrites the previous snapshot.
	SaveReport(ctx context.Context, report domain.Report) error

	// FindReportByID retrieves a stored report snapshot.
	FindReportByID(ctx context.Context, organizationID, reportID string) (*domain.Report, error)

	// ListReports retrieves stored reports of an organization, newest first.
	ListReports(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Report, error)

	// GetTrialBalanceData aggregates per-account debit and credit totals over
	// ledger entries dated within [from, to].
	GetTrialBalanceData(ctx context.Context, organizationID string, from, to time.Time) ([]domain.TrialBalanceRow, error)
}
