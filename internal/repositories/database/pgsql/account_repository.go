package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
)

const accountColumns = `account_id, organization_id, code, name, account_type, parent_account_id, is_postable,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID, &a.OrganizationID, &a.Code, &a.Name, &a.AccountType, &a.ParentAccountID, &a.IsPostable,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.OrganizationID, account.Code, account.Name, account.AccountType,
		account.ParentAccountID, account.IsPostable,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	return translateError(err, "save account "+account.Code)
}

// FindAccountByID retrieves a specific account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_id = $2;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, organizationID, accountID))
	if err != nil {
		return nil, translateError(err, "find account "+accountID)
	}
	return account, nil
}

// FindAccountByCode retrieves an account by its code within an organization.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND code = $2;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, organizationID, code))
	if err != nil {
		return nil, translateError(err, "find account by code "+code)
	}
	return account, nil
}

// FindAccountsByIDs retrieves multiple accounts of one organization by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, organizationID, accountIDs)
	if err != nil {
		return nil, translateError(err, "find accounts by IDs")
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[account.AccountID] = *account
	}
	return accounts, rows.Err()
}

// ListAccounts retrieves accounts of an organization ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 ORDER BY code LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list accounts")
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// ListChildAccounts retrieves the direct children of an account.
func (r *PgxAccountRepository) ListChildAccounts(ctx context.Context, organizationID, parentAccountID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND parent_account_id = $2 ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, organizationID, parentAccountID)
	if err != nil {
		return nil, translateError(err, "list child accounts")
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// UpdateAccount updates an existing account's details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, is_postable = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1 AND account_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.OrganizationID, account.AccountID, account.Name, account.IsPostable,
		account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "update account "+account.AccountID)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "update account "+account.AccountID)
	}
	return nil
}

// DeleteAccount removes an account. Foreign keys from journal lines are
// RESTRICT, so a referenced account surfaces as ErrConflict.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, organizationID, accountID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM accounts WHERE organization_id = $1 AND account_id = $2;`,
		organizationID, accountID,
	)
	if err != nil {
		return translateError(err, "delete account "+accountID)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "delete account "+accountID)
	}
	return nil
}

// FindAccountsByIDsForUpdate selects accounts and locks their rows within the
// given transaction, serializing concurrent postings per account.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_id = ANY($2) FOR UPDATE;`
	rows, err := tx.Query(ctx, query, organizationID, accountIDs)
	if err != nil {
		return nil, translateError(err, "lock accounts for update")
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
	}
	return accounts, nil
}
