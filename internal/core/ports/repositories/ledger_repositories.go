package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// LedgerReader defines read operations over derived ledger entries
type LedgerReader interface {
	// EntriesByAccount retrieves ledger entries of one account ordered by
	// (date, created_at, id). Nil bounds leave the window open on that side;
	// both bounds are inclusive.
	EntriesByAccount(ctx context.Context, organizationID, accountID string, from, to *time.Time) ([]domain.LedgerEntry, error)

	// LastBalanceBefore returns the running balance of the last ledger entry
	// strictly before the given date, or zero with found=false when the account
	// has no earlier entries.
	LastBalanceBefore(ctx context.Context, organizationID, accountID string, before time.Time) (balance decimal.Decimal, found bool, err error)

	// ListActiveAccountIDs returns the IDs of accounts that have at least one
	// ledger entry dated on or before the given date.
	ListActiveAccountIDs(ctx context.Context, organizationID string, through time.Time) ([]string, error)
}

// LedgerProjector rebuilds the derived projection from posted journal lines.
type LedgerProjector interface {
	// RebuildAccountProjection re-derives ledger entries for one account from all
	// posted journal lines and recomputes running balances from the given date
	// forward. The operation is idempotent: derivation upserts on journal line ID
	// and removes rows whose source line no longer exists.
	RebuildAccountProjection(ctx context.Context, organizationID, accountID string, from time.Time) error
}

// SummaryRepository defines storage for period rollups
type SummaryRepository interface {
	// UpsertSummary writes the summary for (account, period), overwriting any
	// previous rollup of the same window.
	UpsertSummary(ctx context.Context, summary domain.LedgerSummary) error

	// FindSummary retrieves the summary for an exact (account, period) window.
	FindSummary(ctx context.Context, organizationID, accountID string, periodStart, periodEnd time.Time) (*domain.LedgerSummary, error)

	// SummariesOverlapping retrieves all summaries of an organization whose
	// period overlaps [periodStart, periodEnd], joined with their account's
	// display fields, ordered by account code.
	SummariesOverlapping(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) ([]domain.AccountSummary, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerProjector
	SummaryRepository
}
