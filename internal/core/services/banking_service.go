package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// bankingService manages bank accounts and statement reconciliations. The book
// side of a reconciliation is read from the ledger projection of the bank
// account's linked ledger account.
type bankingService struct {
	BaseService
	bankingRepo portsrepo.BankingRepository
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerReader
}

// NewBankingService creates a new BankingService.
func NewBankingService(bankingRepo portsrepo.BankingRepository, accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader, authorizer portssvc.OrganizationAuthorizer) portssvc.BankingSvc {
	return &bankingService{
		BaseService: BaseService{Authorizer: authorizer},
		bankingRepo: bankingRepo,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.BankingSvc = (*bankingService)(nil)

// CreateBankAccount registers a bank account linked to a postable asset account.
func (s *bankingService) CreateBankAccount(ctx context.Context, organizationID string, req dto.CreateBankAccountRequest, actorID string) (*domain.BankAccount, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}

	ledgerAccount, err := s.accountRepo.FindAccountByID(ctx, organizationID, req.LedgerAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ledger account %s: %w", req.LedgerAccountID, err)
	}
	if ledgerAccount.AccountType != domain.Asset || !ledgerAccount.IsPostable {
		return nil, apperrors.NewValidationError("bank.ledger_account",
			fmt.Sprintf("account %s must be a postable asset account", ledgerAccount.Code))
	}

	account := domain.BankAccount{
		BankAccountID:   uuid.NewString(),
		OrganizationID:  organizationID,
		BankName:        req.BankName,
		AccountNumber:   req.AccountNumber,
		LedgerAccountID: req.LedgerAccountID,
		AuditFields:     domain.NewAuditFields(actorID, time.Now().UTC()),
	}
	if err := s.bankingRepo.SaveBankAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: bank account number %s already registered", apperrors.ErrDuplicate, req.AccountNumber)
		}
		s.LogError(ctx, err, "failed to save bank account", slog.String("bank_name", req.BankName))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	s.LogInfo(ctx, "bank account registered", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

// ListBankAccounts retrieves the bank accounts of an organization.
func (s *bankingService) ListBankAccounts(ctx context.Context, organizationID string, actorID string) ([]domain.BankAccount, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	accounts, err := s.bankingRepo.ListBankAccounts(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

// Reconcile compares a statement balance against the book balance of the
// linked ledger account at period end and records the outcome.
func (s *bankingService) Reconcile(ctx context.Context, organizationID string, req dto.ReconcileRequest, actorID string) (*domain.Reconciliation, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}
	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, apperrors.NewValidationError("reconciliation.period", "period end must not precede period start")
	}

	bankAccount, err := s.bankingRepo.FindBankAccountByID(ctx, organizationID, req.BankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bank account %s: %w", req.BankAccountID, err)
	}

	// Book balance as of period end (inclusive).
	bookBalance, found, err := s.ledgerRepo.LastBalanceBefore(ctx, organizationID, bankAccount.LedgerAccountID, req.PeriodEnd.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to read book balance: %w", err)
	}
	if !found {
		bookBalance = decimal.Zero
	}

	difference := req.StatementBalance.Sub(bookBalance)
	rec := domain.Reconciliation{
		ReconciliationID: uuid.NewString(),
		OrganizationID:   organizationID,
		BankAccountID:    bankAccount.BankAccountID,
		PeriodStart:      req.PeriodStart,
		PeriodEnd:        req.PeriodEnd,
		StatementBalance: req.StatementBalance,
		BookBalance:      bookBalance,
		Difference:       difference,
		Reconciled:       difference.IsZero(),
		AuditFields:      domain.NewAuditFields(actorID, time.Now().UTC()),
	}
	if err := s.bankingRepo.SaveReconciliation(ctx, rec); err != nil {
		s.LogError(ctx, err, "failed to save reconciliation", slog.String("bank_account_id", bankAccount.BankAccountID))
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	s.LogInfo(ctx, "reconciliation recorded",
		slog.String("bank_account_id", bankAccount.BankAccountID),
		slog.Bool("reconciled", rec.Reconciled),
		slog.String("difference", difference.String()))
	return &rec, nil
}

// ListReconciliations retrieves reconciliations of a bank account.
func (s *bankingService) ListReconciliations(ctx context.Context, organizationID, bankAccountID string, actorID string) ([]domain.Reconciliation, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	recs, err := s.bankingRepo.ListReconciliations(ctx, organizationID, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	return recs, nil
}
