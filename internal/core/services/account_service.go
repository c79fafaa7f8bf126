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
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// accountService manages the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalReader, authorizer portssvc.OrganizationAuthorizer) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{Authorizer: authorizer},
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find account", slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts of one organization.
func (s *accountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, organizationID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "failed to find accounts", slog.Int("count", len(accountIDs)))
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves accounts of an organization ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 100
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list accounts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// AccountFullName resolves the qualified display name of an account by walking
// its ancestors up to the root.
func (s *accountService) AccountFullName(ctx context.Context, organizationID, accountID string) (string, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return "", fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	ancestry := map[string]domain.Account{account.AccountID: *account}
	current := account
	for current.ParentAccountID != nil {
		parentID := *current.ParentAccountID
		if _, seen := ancestry[parentID]; seen {
			break // cycle guard
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, organizationID, parentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				break
			}
			return "", fmt.Errorf("failed to resolve parent account %s: %w", parentID, err)
		}
		ancestry[parent.AccountID] = *parent
		current = parent
	}
	return domain.AccountFullName(ancestry, accountID), nil
}

// CreateAccount creates a new account after validating its code uniqueness and
// parent linkage.
func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, organizationID, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account code %s already in use", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, organizationID, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent account %s: %w", *req.ParentAccountID, err)
		}
		if parent.AccountType != req.AccountType {
			return nil, apperrors.NewValidationError("account.parent_type",
				fmt.Sprintf("parent account %s has type %s, child declared %s", parent.Code, parent.AccountType, req.AccountType))
		}
	}

	isPostable := true
	if req.IsPostable != nil {
		isPostable = *req.IsPostable
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		OrganizationID:  organizationID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		IsPostable:      isPostable,
		AuditFields:     domain.NewAuditFields(actorID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already in use", apperrors.ErrDuplicate, req.Code)
		}
		s.LogError(ctx, err, "failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("organization_id", organizationID))
	return &account, nil
}

// UpdateAccount updates an account's mutable details.
func (s *accountService) UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.IsPostable != nil {
		// A parent with children must stay non-postable.
		if *req.IsPostable {
			children, err := s.accountRepo.ListChildAccounts(ctx, organizationID, accountID)
			if err != nil {
				return nil, fmt.Errorf("failed to list child accounts: %w", err)
			}
			if len(children) > 0 {
				return nil, apperrors.NewValidationError("account.postable_parent",
					fmt.Sprintf("account %s has %d child accounts and cannot be postable", account.Code, len(children)))
			}
		}
		account.IsPostable = *req.IsPostable
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.Touch(actorID, time.Now().UTC())
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account unless journal lines reference it.
func (s *accountService) DeleteAccount(ctx context.Context, organizationID, accountID string, actorID string) error {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return err
	}

	refs, err := s.journalRepo.CountLinesByAccount(ctx, organizationID, accountID)
	if err != nil {
		return fmt.Errorf("failed to count journal references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: account %s is referenced by %d journal lines", apperrors.ErrConflict, accountID, refs)
	}

	children, err := s.accountRepo.ListChildAccounts(ctx, organizationID, accountID)
	if err != nil {
		return fmt.Errorf("failed to list child accounts: %w", err)
	}
	if len(children) > 0 {
		return fmt.Errorf("%w: account %s has %d child accounts", apperrors.ErrConflict, accountID, len(children))
	}

	if err := s.accountRepo.DeleteAccount(ctx, organizationID, accountID); err != nil {
		s.LogError(ctx, err, "failed to delete account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.LogInfo(ctx, "account deleted", slog.String("account_id", accountID))
	return nil
}
