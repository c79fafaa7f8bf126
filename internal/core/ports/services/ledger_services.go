package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// LedgerReaderSvc defines read operations over the derived ledger
type LedgerReaderSvc interface {
	// AccountEntries retrieves ledger entries of one account within an optional
	// inclusive window, ordered by (date, created_at, id).
	AccountEntries(ctx context.Context, organizationID, accountID string, from, to *time.Time, actorID string) ([]domain.LedgerEntry, error)

	// AccountBalance returns the running balance of an account as of a date
	// (zero when the account has no movements up to it).
	AccountBalance(ctx context.Context, organizationID, accountID string, asOf time.Time, actorID string) (decimal.Decimal, error)
}

// LedgerRollupSvc defines period rollup operations
type LedgerRollupSvc interface {
	// RollupPeriod computes and upserts the ledger summary of one account for a
	// period. The closing balance is cross-checked against the last in-window
	// running balance; a mismatch fails with a consistency error.
	RollupPeriod(ctx context.Context, organizationID, accountID string, periodStart, periodEnd time.Time, actorID string) (*domain.LedgerSummary, error)

	// RollupOrganization rolls up every account with ledger activity dated on or
	// before the period end.
	RollupOrganization(ctx context.Context, organizationID string, periodStart, periodEnd time.Time, actorID string) ([]domain.LedgerSummary, error)
}

// LedgerMaintenanceSvc defines projection maintenance operations
type LedgerMaintenanceSvc interface {
	// RebuildAccountProjection re-derives ledger entries for an account from the
	// given date forward. Idempotent.
	RebuildAccountProjection(ctx context.Context, organizationID, accountID string, from time.Time, actorID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerRollupSvc
	LedgerMaintenanceSvc
}
