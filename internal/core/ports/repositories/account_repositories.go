package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within an organization.
	FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts of one organization by their IDs.
	FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts of an organization ordered by code.
	ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error)

	// ListChildAccounts retrieves the direct children of an account.
	ListChildAccounts(ctx context.Context, organizationID, parentAccountID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. The delete is restricted while journal
	// lines reference the account; the violation surfaces as ErrConflict.
	DeleteAccount(ctx context.Context, organizationID, accountID string) error
}

// AccountLockSupport defines operations used inside posting transactions
type AccountLockSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for update
	// within the given transaction, serializing concurrent postings per account.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, organizationID string, accountIDs []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLockSupport
}
