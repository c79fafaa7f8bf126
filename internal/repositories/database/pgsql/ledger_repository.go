package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	"github.com/bookkeepd/bookkeepd/internal/utils/accounting"
)

const ledgerColumns = `ledger_entry_id, organization_id, account_id, line_id, entry_date, debit, credit, balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for derived ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	err := row.Scan(
		&e.LedgerEntryID, &e.OrganizationID, &e.AccountID, &e.LineID, &e.Date, &e.Debit, &e.Credit, &e.Balance,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EntriesByAccount retrieves ledger entries of one account ordered by
// (date, created_at, id). Both bounds are inclusive; nil leaves a side open.
func (r *PgxLedgerRepository) EntriesByAccount(ctx context.Context, organizationID, accountID string, from, to *time.Time) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE organization_id = $1 AND account_id = $2`
	args := []any{organizationID, accountID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND entry_date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND entry_date <= $%d`, len(args))
	}
	query += ` ORDER BY entry_date, created_at, ledger_entry_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "list ledger entries for account "+accountID)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// LastBalanceBefore returns the running balance of the last ledger entry
// strictly before the given date.
func (r *PgxLedgerRepository) LastBalanceBefore(ctx context.Context, organizationID, accountID string, before time.Time) (decimal.Decimal, bool, error) {
	query := `
		SELECT balance FROM ledger_entries
		WHERE organization_id = $1 AND account_id = $2 AND entry_date < $3
		ORDER BY entry_date DESC, created_at DESC, ledger_entry_id DESC
		LIMIT 1;
	`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, organizationID, accountID, before).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, translateError(err, "last balance before for account "+accountID)
	}
	return balance, true, nil
}

// ListActiveAccountIDs returns the IDs of accounts that have at least one
// ledger entry dated on or before the given date.
func (r *PgxLedgerRepository) ListActiveAccountIDs(ctx context.Context, organizationID string, through time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT account_id FROM ledger_entries
		WHERE organization_id = $1 AND entry_date <= $2
		ORDER BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, through)
	if err != nil {
		return nil, translateError(err, "list active account IDs")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RebuildAccountProjection re-derives ledger entries of one account from its
// posted journal lines inside one transaction: rows whose source line is gone
// or no longer posted are removed, every posted line is upserted (keyed by
// line ID), and running balances are recomputed from the given date forward.
func (r *PgxLedgerRepository) RebuildAccountProjection(ctx context.Context, organizationID, accountID string, from time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Drop orphaned derivations.
	if _, err := tx.Exec(ctx, `
		DELETE FROM ledger_entries le
		WHERE le.organization_id = $1 AND le.account_id = $2
		  AND NOT EXISTS (
			SELECT 1 FROM journal_lines jl
			JOIN journal_entries je ON je.entry_id = jl.entry_id
			WHERE jl.line_id = le.line_id AND je.status = 'posted'
		  );`,
		organizationID, accountID,
	); err != nil {
		return translateError(err, "delete orphaned ledger entries for account "+accountID)
	}

	// Re-derive from every posted line of the account.
	rows, err := tx.Query(ctx, `
		SELECT jl.line_id, jl.amount, jl.dc, je.entry_date, jl.created_at, jl.created_by
		FROM journal_lines jl
		JOIN journal_entries je ON je.entry_id = jl.entry_id
		WHERE jl.organization_id = $1 AND jl.account_id = $2 AND je.status = 'posted';`,
		organizationID, accountID,
	)
	if err != nil {
		return translateError(err, "select posted lines for account "+accountID)
	}

	type sourceLine struct {
		lineID    string
		amount    decimal.Decimal
		dc        domain.DCIndicator
		entryDate time.Time
		createdAt time.Time
		createdBy string
	}
	var sources []sourceLine
	for rows.Next() {
		var sl sourceLine
		if err := rows.Scan(&sl.lineID, &sl.amount, &sl.dc, &sl.entryDate, &sl.createdAt, &sl.createdBy); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan posted line: %w", err)
		}
		sources = append(sources, sl)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	upsert := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (line_id) DO UPDATE
		SET entry_date = EXCLUDED.entry_date, debit = EXCLUDED.debit, credit = EXCLUDED.credit,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	for _, sl := range sources {
		debit, credit := decimal.Zero, decimal.Zero
		if sl.dc == domain.DebitLine {
			debit = sl.amount
		} else {
			credit = sl.amount
		}
		batch.Queue(upsert,
			uuid.NewString(), organizationID, accountID, sl.lineID, sl.entryDate, debit, credit, decimal.Zero,
			sl.createdAt, sl.createdBy, now, sl.createdBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateError(err, "upsert rebuilt ledger entries for account "+accountID)
	}

	if err := recomputeAccountBalances(ctx, tx, organizationID, accountID, from); err != nil {
		return fmt.Errorf("failed to recompute balances for account %s: %w", accountID, err)
	}

	return r.Commit(ctx, tx)
}

// UpsertSummary writes the summary for (account, period), overwriting any
// previous rollup of the same window.
func (r *PgxLedgerRepository) UpsertSummary(ctx context.Context, summary domain.LedgerSummary) error {
	query := `
		INSERT INTO ledger_summaries (
			summary_id, organization_id, account_id, period_start, period_end,
			opening_balance, debit_total, credit_total, closing_balance,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (organization_id, account_id, period_start, period_end) DO UPDATE
		SET opening_balance = EXCLUDED.opening_balance, debit_total = EXCLUDED.debit_total,
		    credit_total = EXCLUDED.credit_total, closing_balance = EXCLUDED.closing_balance,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		summary.SummaryID, summary.OrganizationID, summary.AccountID, summary.PeriodStart, summary.PeriodEnd,
		summary.OpeningBalance, summary.DebitTotal, summary.CreditTotal, summary.ClosingBalance,
		summary.CreatedAt, summary.CreatedBy, summary.LastUpdatedAt, summary.LastUpdatedBy,
	)
	return translateError(err, "upsert ledger summary for account "+summary.AccountID)
}

// FindSummary retrieves the summary for an exact (account, period) window.
func (r *PgxLedgerRepository) FindSummary(ctx context.Context, organizationID, accountID string, periodStart, periodEnd time.Time) (*domain.LedgerSummary, error) {
	query := `
		SELECT summary_id, organization_id, account_id, period_start, period_end,
		       opening_balance, debit_total, credit_total, closing_balance,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_summaries
		WHERE organization_id = $1 AND account_id = $2 AND period_start = $3 AND period_end = $4;
	`
	var s domain.LedgerSummary
	err := r.Pool.QueryRow(ctx, query, organizationID, accountID, periodStart, periodEnd).Scan(
		&s.SummaryID, &s.OrganizationID, &s.AccountID, &s.PeriodStart, &s.PeriodEnd,
		&s.OpeningBalance, &s.DebitTotal, &s.CreditTotal, &s.ClosingBalance,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err, "find ledger summary for account "+accountID)
	}
	return &s, nil
}

// SummariesOverlapping retrieves all summaries of an organization whose period
// overlaps [periodStart, periodEnd], with their account's display fields.
func (r *PgxLedgerRepository) SummariesOverlapping(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) ([]domain.AccountSummary, error) {
	query := `
		SELECT s.summary_id, s.organization_id, s.account_id, s.period_start, s.period_end,
		       s.opening_balance, s.debit_total, s.credit_total, s.closing_balance,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by,
		       a.code, a.name, a.account_type
		FROM ledger_summaries s
		JOIN accounts a ON a.account_id = s.account_id
		WHERE s.organization_id = $1 AND s.period_start <= $3 AND s.period_end >= $2
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, periodStart, periodEnd)
	if err != nil {
		return nil, translateError(err, "list overlapping summaries")
	}
	defer rows.Close()

	var result []domain.AccountSummary
	for rows.Next() {
		var as domain.AccountSummary
		if err := rows.Scan(
			&as.Summary.SummaryID, &as.Summary.OrganizationID, &as.Summary.AccountID,
			&as.Summary.PeriodStart, &as.Summary.PeriodEnd,
			&as.Summary.OpeningBalance, &as.Summary.DebitTotal, &as.Summary.CreditTotal, &as.Summary.ClosingBalance,
			&as.Summary.CreatedAt, &as.Summary.CreatedBy, &as.Summary.LastUpdatedAt, &as.Summary.LastUpdatedBy,
			&as.AccountCode, &as.AccountName, &as.AccountType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		result = append(result, as)
	}
	return result, rows.Err()
}

// recomputeAccountBalances reassigns running balances of one account from the
// given date forward, seeding from the last balance strictly before it. Runs
// inside the caller's transaction, after the affected account rows are locked.
func recomputeAccountBalances(ctx context.Context, tx pgx.Tx, organizationID, accountID string, from time.Time) error {
	var opening decimal.Decimal
	err := tx.QueryRow(ctx, `
		SELECT balance FROM ledger_entries
		WHERE organization_id = $1 AND account_id = $2 AND entry_date < $3
		ORDER BY entry_date DESC, created_at DESC, ledger_entry_id DESC
		LIMIT 1;`,
		organizationID, accountID, from,
	).Scan(&opening)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return translateError(err, "read opening balance for account "+accountID)
		}
		opening = decimal.Zero
	}

	rows, err := tx.Query(ctx, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		WHERE organization_id = $1 AND account_id = $2 AND entry_date >= $3
		ORDER BY entry_date, created_at, ledger_entry_id;`,
		organizationID, accountID, from,
	)
	if err != nil {
		return translateError(err, "read ledger entries for recompute")
	}

	var entries []domain.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan ledger entry for recompute: %w", err)
		}
		entries = append(entries, *entry)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	accounting.RecomputeRunningBalances(entries, opening)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`UPDATE ledger_entries SET balance = $2 WHERE ledger_entry_id = $1;`, e.LedgerEntryID, e.Balance)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateError(err, "write recomputed balances for account "+accountID)
	}
	return nil
}
