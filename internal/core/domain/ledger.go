package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one dated movement of an account, derived from exactly one
// posted journal line (keyed by LineID, making re-derivation idempotent).
// Balance is the running total after this movement:
//
//	balance = previous_balance + debit - credit
//
// computed per account in (date, created_at, id) order.
type LedgerEntry struct {
	LedgerEntryID  string          `json:"ledgerEntryID"` // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"`
	AccountID      string          `json:"accountID"`
	LineID         string          `json:"lineID"` // FK -> journal_lines, unique
	Date           time.Time       `json:"date"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Balance        decimal.Decimal `json:"balance"`
	AuditFields
}

// LedgerSummary aggregates one account's ledger movements over a period.
// Invariant: ClosingBalance == OpeningBalance + DebitTotal - CreditTotal.
// One summary exists per (account, period); rollups upsert.
type LedgerSummary struct {
	SummaryID      string          `json:"summaryID"` // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"`
	AccountID      string          `json:"accountID"`
	PeriodStart    time.Time       `json:"periodStart"`
	PeriodEnd      time.Time       `json:"periodEnd"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	AuditFields
}
