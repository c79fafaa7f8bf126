package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/utils/accounting"
)

// ledgerService reads the derived ledger and maintains period rollups.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, authorizer portssvc.OrganizationAuthorizer) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: BaseService{Authorizer: authorizer},
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// AccountEntries retrieves ledger entries of one account within an optional
// inclusive window.
func (s *ledgerService) AccountEntries(ctx context.Context, organizationID, accountID string, from, to *time.Time, actorID string) ([]domain.LedgerEntry, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.EntriesByAccount(ctx, organizationID, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch ledger entries", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to fetch ledger entries for account %s: %w", accountID, err)
	}
	return entries, nil
}

// AccountBalance returns the running balance of an account as of a date.
func (s *ledgerService) AccountBalance(ctx context.Context, organizationID, accountID string, asOf time.Time, actorID string) (decimal.Decimal, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return decimal.Zero, err
	}
	// "as of" is inclusive, so look strictly before the following day.
	balance, found, err := s.ledgerRepo.LastBalanceBefore(ctx, organizationID, accountID, asOf.AddDate(0, 0, 1))
	if err != nil {
		s.LogError(ctx, err, "failed to fetch account balance", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to fetch balance for account %s: %w", accountID, err)
	}
	if !found {
		return decimal.Zero, nil
	}
	return balance, nil
}

// RebuildAccountProjection re-derives ledger entries for an account from the
// given date forward.
func (s *ledgerService) RebuildAccountProjection(ctx context.Context, organizationID, accountID string, from time.Time, actorID string) error {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return err
	}
	if err := s.ledgerRepo.RebuildAccountProjection(ctx, organizationID, accountID, from); err != nil {
		s.LogError(ctx, err, "failed to rebuild ledger projection", slog.String("account_id", accountID))
		return fmt.Errorf("failed to rebuild projection for account %s: %w", accountID, err)
	}
	s.LogInfo(ctx, "ledger projection rebuilt",
		slog.String("account_id", accountID),
		slog.Time("from", from))
	return nil
}

// RollupPeriod computes and upserts the ledger summary of one account for a
// period. Fails with a consistency error when the stored running balances no
// longer agree with the computed closing balance.
func (s *ledgerService) RollupPeriod(ctx context.Context, organizationID, accountID string, periodStart, periodEnd time.Time, actorID string) (*domain.LedgerSummary, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if periodEnd.Before(periodStart) {
		return nil, apperrors.NewValidationError("summary.period",
			fmt.Sprintf("period end %s before period start %s", periodEnd.Format("2006-01-02"), periodStart.Format("2006-01-02")))
	}
	return s.rollupAccount(ctx, organizationID, accountID, periodStart, periodEnd, actorID)
}

// rollupAccount performs the rollup without an authorization check so that
// RollupOrganization authorizes once rather than per account.
func (s *ledgerService) rollupAccount(ctx context.Context, organizationID, accountID string, periodStart, periodEnd time.Time, actorID string) (*domain.LedgerSummary, error) {
	opening, found, err := s.ledgerRepo.LastBalanceBefore(ctx, organizationID, accountID, periodStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opening balance for account %s: %w", accountID, err)
	}
	if !found {
		opening = decimal.Zero
	}

	entries, err := s.ledgerRepo.EntriesByAccount(ctx, organizationID, accountID, &periodStart, &periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger entries for account %s: %w", accountID, err)
	}

	debitTotal, creditTotal, closing, err := accounting.RollupPeriod(opening, entries)
	if err != nil {
		s.LogError(ctx, err, "ledger rollup consistency failure",
			slog.String("account_id", accountID),
			slog.Time("period_start", periodStart),
			slog.Time("period_end", periodEnd))
		return nil, err
	}

	now := time.Now().UTC()
	summary := domain.LedgerSummary{
		SummaryID:      uuid.NewString(),
		OrganizationID: organizationID,
		AccountID:      accountID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		OpeningBalance: opening,
		DebitTotal:     debitTotal,
		CreditTotal:    creditTotal,
		ClosingBalance: closing,
		AuditFields:    domain.NewAuditFields(actorID, now),
	}

	if err := s.ledgerRepo.UpsertSummary(ctx, summary); err != nil {
		s.LogError(ctx, err, "failed to upsert ledger summary", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to upsert summary for account %s: %w", accountID, err)
	}

	s.LogDebug(ctx, "ledger summary rolled up",
		slog.String("account_id", accountID),
		slog.String("closing_balance", closing.String()))
	return &summary, nil
}

// RollupOrganization rolls up every account with ledger activity dated on or
// before the period end.
func (s *ledgerService) RollupOrganization(ctx context.Context, organizationID string, periodStart, periodEnd time.Time, actorID string) ([]domain.LedgerSummary, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if periodEnd.Before(periodStart) {
		return nil, apperrors.NewValidationError("summary.period",
			fmt.Sprintf("period end %s before period start %s", periodEnd.Format("2006-01-02"), periodStart.Format("2006-01-02")))
	}

	accountIDs, err := s.ledgerRepo.ListActiveAccountIDs(ctx, organizationID, periodEnd)
	if err != nil {
		s.LogError(ctx, err, "failed to list active accounts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}

	summaries := make([]domain.LedgerSummary, 0, len(accountIDs))
	for _, accountID := range accountIDs {
		summary, err := s.rollupAccount(ctx, organizationID, accountID, periodStart, periodEnd, actorID)
		if err != nil {
			// A consistency failure on one account aborts the whole rollup so a
			// half-written period never feeds a report.
			return nil, fmt.Errorf("rollup failed at account %s: %w", accountID, err)
		}
		summaries = append(summaries, *summary)
	}

	s.LogInfo(ctx, "organization rollup complete",
		slog.String("organization_id", organizationID),
		slog.Int("account_count", len(summaries)))
	return summaries, nil
}
