package services

import (
	"context"
	"time"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// ReportingSvc defines financial report generation and retrieval
type ReportingSvc interface {
	// GenerateReport assembles a report snapshot from ledger summaries whose
	// periods overlap the requested window, grouped by account type. The
	// snapshot replaces any previous one for the same type and period.
	GenerateReport(ctx context.Context, organizationID string, reportType domain.ReportType, periodStart, periodEnd time.Time, actorID string) (*domain.Report, error)

	GetReport(ctx context.Context, organizationID, reportID string, actorID string) (*domain.Report, error)
	ListReports(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.Report, error)

	// TrialBalance computes debit and credit totals per account directly from
	// posted ledger entries in the window.
	TrialBalance(ctx context.Context, organizationID string, from, to time.Time, actorID string) ([]domain.TrialBalanceRow, error)
}
