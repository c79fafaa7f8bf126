package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
)

// reportAccountTypes restricts which account types feed each report type.
// Nil means every type is included.
var reportAccountTypes = map[domain.ReportType][]domain.AccountType{
	domain.BalanceSheet: {domain.Asset, domain.Liability, domain.Equity},
	domain.ProfitLoss:   {domain.Income, domain.Expense},
	domain.CashFlow:     {domain.Asset},
	domain.TrialBalance: nil,
}

// reportingService assembles report snapshots from ledger summaries.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	ledgerRepo    portsrepo.SummaryRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, ledgerRepo portsrepo.SummaryRepository, authorizer portssvc.OrganizationAuthorizer) portssvc.ReportingSvc {
	return &reportingService{
		BaseService:   BaseService{Authorizer: authorizer},
		reportingRepo: reportingRepo,
		ledgerRepo:    ledgerRepo,
	}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// GenerateReport assembles a snapshot from summaries whose periods overlap the
// requested window, grouped by account type. The snapshot replaces any
// previous one for the same (type, period).
func (s *reportingService) GenerateReport(ctx context.Context, organizationID string, reportType domain.ReportType, periodStart, periodEnd time.Time, actorID string) (*domain.Report, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAuditor); err != nil {
		return nil, err
	}
	if !reportType.Valid() {
		return nil, apperrors.NewValidationError("report.type", fmt.Sprintf("unknown report type %q", reportType))
	}
	if periodEnd.Before(periodStart) {
		return nil, apperrors.NewValidationError("report.period",
			fmt.Sprintf("period end %s before period start %s", periodEnd.Format("2006-01-02"), periodStart.Format("2006-01-02")))
	}

	summaries, err := s.ledgerRepo.SummariesOverlapping(ctx, organizationID, periodStart, periodEnd)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch summaries for report", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to fetch summaries: %w", err)
	}

	included := map[domain.AccountType]bool{}
	if types := reportAccountTypes[reportType]; types != nil {
		for _, t := range types {
			included[t] = true
		}
	}

	data := make(domain.ReportData)
	for _, as := range summaries {
		if len(included) > 0 && !included[as.AccountType] {
			continue
		}
		data[as.AccountType] = append(data[as.AccountType], domain.ReportRow{
			AccountCode:    as.AccountCode,
			AccountName:    as.AccountName,
			OpeningBalance: as.Summary.OpeningBalance,
			DebitTotal:     as.Summary.DebitTotal,
			CreditTotal:    as.Summary.CreditTotal,
			ClosingBalance: as.Summary.ClosingBalance,
		})
	}

	report := domain.Report{
		ReportID:       uuid.NewString(),
		OrganizationID: organizationID,
		ReportType:     reportType,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		GeneratedBy:    actorID,
		GeneratedAt:    time.Now().UTC(),
		Data:           data,
	}

	if err := s.reportingRepo.SaveReport(ctx, report); err != nil {
		s.LogError(ctx, err, "failed to save report", slog.String("report_type", string(reportType)))
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	s.LogInfo(ctx, "report generated",
		slog.String("report_id", report.ReportID),
		slog.String("report_type", string(reportType)),
		slog.Int("row_groups", len(data)))
	return &report, nil
}

// GetReport retrieves a stored report snapshot.
func (s *reportingService) GetReport(ctx context.Context, organizationID, reportID string, actorID string) (*domain.Report, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	report, err := s.reportingRepo.FindReportByID(ctx, organizationID, reportID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find report", slog.String("report_id", reportID))
		}
		return nil, fmt.Errorf("failed to find report %s: %w", reportID, err)
	}
	return report, nil
}

// ListReports retrieves stored reports of an organization, newest first.
func (s *reportingService) ListReports(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.Report, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	reports, err := s.reportingRepo.ListReports(ctx, organizationID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list reports", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// TrialBalance computes debit and credit totals per account directly from
// ledger entries in the window, bypassing stored summaries.
func (s *reportingService) TrialBalance(ctx context.Context, organizationID string, from, to time.Time, actorID string) ([]domain.TrialBalanceRow, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAuditor); err != nil {
		return nil, err
	}
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, organizationID, from, to)
	if err != nil {
		s.LogError(ctx, err, "failed to compute trial balance", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}
	return rows, nil
}
