package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// PostCompanion is a write that must commit or roll back together with a
// journal posting. Repositories hand these out for rows that reference the
// posted entry (a payment, a depreciation posting); PostEntry applies them
// inside its transaction so the ledger movement and the referencing row can
// never exist without each other.
type PostCompanion interface {
	Apply(ctx context.Context, tx pgx.Tx) error
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of a journal entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntriesByOrganization retrieves a page of journal entries using
	// token-based pagination ordered by (entry_date DESC, created_at DESC).
	// It returns the entries, a token for the next page, and an error.
	ListEntriesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// CountLinesByAccount reports how many journal lines reference an account.
	CountLinesByAccount(ctx context.Context, organizationID, accountID string) (int64, error)
}

// JournalWriter defines write operations for draft journal data
type JournalWriter interface {
	// SaveEntry persists a new draft entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateEntryHeader updates the date, reference and description of a draft entry.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error

	// DeleteDraftEntry removes a draft entry and, by cascade, its lines.
	DeleteDraftEntry(ctx context.Context, organizationID, entryID string) error
}

// JournalPoster defines the atomic posting pipeline. Both operations run in a
// single database transaction with the affected account rows locked; either
// everything is applied or nothing is.
type JournalPoster interface {
	// PostEntry flips a draft entry to posted and writes its derived ledger
	// entries. Derivation is keyed by journal line ID (upsert), and running
	// balances of every affected account are recomputed from the earliest
	// affected date forward. Companions are applied in the same transaction,
	// after the ledger writes; any companion failure rolls back the posting.
	PostEntry(ctx context.Context, entry domain.JournalEntry, derived []domain.LedgerEntry, companions ...PostCompanion) error

	// UnpostEntry flips a posted entry back to draft, deletes its derived ledger
	// entries and recomputes the affected running balances forward.
	UnpostEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalPoster
}
