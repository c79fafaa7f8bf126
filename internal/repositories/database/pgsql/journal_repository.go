package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	"github.com/bookkeepd/bookkeepd/internal/utils/pagination"
)

const entryColumns = `entry_id, organization_id, entry_date, reference, description, status,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, organization_id, account_id, amount, dc, cost_center_id, project_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountLockSupport
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountLockSupport) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID, &e.OrganizationID, &e.EntryDate, &e.Reference, &e.Description, &e.Status,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SaveEntry persists a new draft entry and its lines atomically.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID, entry.OrganizationID, entry.EntryDate, entry.Reference, entry.Description, entry.Status,
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "insert journal entry "+entry.EntryID)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID, line.EntryID, line.OrganizationID, line.AccountID, line.Amount, line.DC,
			line.CostCenterID, line.ProjectID,
			line.CreatedAt, line.CreatedBy, line.LastUpdatedAt, line.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateError(err, "insert journal lines for "+entry.EntryID)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a specific journal entry by its unique identifier.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1 AND entry_id = $2;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, organizationID, entryID))
	if err != nil {
		return nil, translateError(err, "find journal entry "+entryID)
	}
	return entry, nil
}

// FindLinesByEntryID retrieves all lines of a journal entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY created_at, line_id;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, translateError(err, "find lines of entry "+entryID)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var l domain.JournalLine
		if err := rows.Scan(
			&l.LineID, &l.EntryID, &l.OrganizationID, &l.AccountID, &l.Amount, &l.DC,
			&l.CostCenterID, &l.ProjectID,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ListEntriesByOrganization retrieves a page of journal entries using token-based
// pagination ordered by (entry_date DESC, created_at DESC).
func (r *PgxJournalRepository) ListEntriesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1`
	args := []any{organizationID}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, entryDate, createdAt)
	}
	// Fetch one extra to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "list journal entries")
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

// CountLinesByAccount reports how many journal lines reference an account.
func (r *PgxJournalRepository) CountLinesByAccount(ctx context.Context, organizationID, accountID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM journal_lines WHERE organization_id = $1 AND account_id = $2;`,
		organizationID, accountID,
	).Scan(&count)
	if err != nil {
		return 0, translateError(err, "count lines by account "+accountID)
	}
	return count, nil
}

// UpdateEntryHeader updates the date, reference and description of a draft entry.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET entry_date = $3, reference = $4, description = $5, last_updated_at = $6, last_updated_by = $7
		WHERE organization_id = $1 AND entry_id = $2 AND status = 'draft';
	`
	tag, err := r.Pool.Exec(ctx, query,
		entry.OrganizationID, entry.EntryID, entry.EntryDate, entry.Reference, entry.Description,
		entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "update journal entry "+entry.EntryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journal entry %s is not an editable draft: %w", entry.EntryID, apperrors.ErrConflict)
	}
	return nil
}

// DeleteDraftEntry removes a draft entry and, by cascade, its lines.
func (r *PgxJournalRepository) DeleteDraftEntry(ctx context.Context, organizationID, entryID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM journal_entries WHERE organization_id = $1 AND entry_id = $2 AND status = 'draft';`,
		organizationID, entryID,
	)
	if err != nil {
		return translateError(err, "delete journal entry "+entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journal entry %s is not a deletable draft: %w", entryID, apperrors.ErrConflict)
	}
	return nil
}

// companionFunc adapts a closure over the posting transaction into a
// PostCompanion.
type companionFunc func(ctx context.Context, tx pgx.Tx) error

func (f companionFunc) Apply(ctx context.Context, tx pgx.Tx) error { return f(ctx, tx) }

// PostEntry flips a draft entry to posted and writes its derived ledger entries
// in one transaction. Affected account rows are locked first so concurrent
// postings against the same accounts serialize. Ledger derivation upserts on
// journal line ID, and running balances of every affected account are
// recomputed from the earliest affected date forward. Companion writes run in
// the same transaction after the ledger writes, so a companion failure rolls
// the whole posting back.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, derived []domain.LedgerEntry, companions ...portsrepo.PostCompanion) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := make([]string, 0, len(derived))
	seen := make(map[string]struct{}, len(derived))
	for _, d := range derived {
		if _, ok := seen[d.AccountID]; !ok {
			seen[d.AccountID] = struct{}{}
			accountIDs = append(accountIDs, d.AccountID)
		}
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, entry.OrganizationID, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for posting: %w", err)
	}

	// Guarded flip: only a draft may become posted.
	tag, err := tx.Exec(ctx,
		`UPDATE journal_entries
		 SET status = 'posted', last_updated_at = $3, last_updated_by = $4
		 WHERE organization_id = $1 AND entry_id = $2 AND status = 'draft';`,
		entry.OrganizationID, entry.EntryID, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "post journal entry "+entry.EntryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journal entry %s is not a postable draft: %w", entry.EntryID, apperrors.ErrConflict)
	}

	batch := &pgx.Batch{}
	upsert := `
		INSERT INTO ledger_entries (
			ledger_entry_id, organization_id, account_id, line_id, entry_date, debit, credit, balance,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (line_id) DO UPDATE
		SET entry_date = EXCLUDED.entry_date, debit = EXCLUDED.debit, credit = EXCLUDED.credit,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	for _, d := range derived {
		batch.Queue(upsert,
			d.LedgerEntryID, d.OrganizationID, d.AccountID, d.LineID, d.Date, d.Debit, d.Credit, d.Balance,
			d.CreatedAt, d.CreatedBy, d.LastUpdatedAt, d.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateError(err, "upsert ledger entries for "+entry.EntryID)
	}

	for _, accountID := range accountIDs {
		if err := recomputeAccountBalances(ctx, tx, entry.OrganizationID, accountID, entry.EntryDate); err != nil {
			return fmt.Errorf("failed to recompute balances for account %s: %w", accountID, err)
		}
	}

	for _, companion := range companions {
		if err := companion.Apply(ctx, tx); err != nil {
			return fmt.Errorf("failed to apply companion write for entry %s: %w", entry.EntryID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// UnpostEntry flips a posted entry back to draft, deletes its derived ledger
// entries and recomputes the affected running balances forward.
func (r *PgxJournalRepository) UnpostEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lineIDs := make([]string, len(lines))
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for i, line := range lines {
		lineIDs[i] = line.LineID
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, entry.OrganizationID, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for un-posting: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE journal_entries
		 SET status = 'draft', last_updated_at = $3, last_updated_by = $4
		 WHERE organization_id = $1 AND entry_id = $2 AND status = 'posted';`,
		entry.OrganizationID, entry.EntryID, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "un-post journal entry "+entry.EntryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journal entry %s is not posted: %w", entry.EntryID, apperrors.ErrConflict)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM ledger_entries WHERE organization_id = $1 AND line_id = ANY($2);`,
		entry.OrganizationID, lineIDs,
	); err != nil {
		return translateError(err, "delete ledger entries for "+entry.EntryID)
	}

	for _, accountID := range accountIDs {
		if err := recomputeAccountBalances(ctx, tx, entry.OrganizationID, accountID, entry.EntryDate); err != nil {
			return fmt.Errorf("failed to recompute balances for account %s: %w", accountID, err)
		}
	}

	return r.Commit(ctx, tx)
}
