package services

import (
	"context"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// AccountReaderSvc defines read operations on the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts of one organization.
	GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts of an organization ordered by code.
	ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error)

	// AccountFullName resolves the qualified display name of an account
	// (ancestor names joined with " > ").
	AccountFullName(ctx context.Context, organizationID, accountID string) (string, error)
}

// AccountWriterSvc defines write operations on the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount creates a new account after validating its code uniqueness
	// and parent linkage.
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// UpdateAccount updates an account's mutable details.
	UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error)

	// DeleteAccount removes an account unless journal lines reference it.
	DeleteAccount(ctx context.Context, organizationID, accountID string, actorID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
