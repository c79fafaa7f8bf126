package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportType enumerates the financial reports the assembler can produce.
type ReportType string

const (
	BalanceSheet ReportType = "balance_sheet"
	ProfitLoss   ReportType = "profit_loss"
	CashFlow     ReportType = "cash_flow"
	TrialBalance ReportType = "trial_balance"
)

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	switch t {
	case BalanceSheet, ProfitLoss, CashFlow, TrialBalance:
		return true
	}
	return false
}

// ReportRow is one account's contribution to a report, at the stored decimal
// precision.
type ReportRow struct {
	AccountCode    string          `json:"account_code"`
	AccountName    string          `json:"account_name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	DebitTotal     decimal.Decimal `json:"debit_total"`
	CreditTotal    decimal.Decimal `json:"credit_total"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// ReportData groups report rows by account type (lower-case type as key).
type ReportData map[AccountType][]ReportRow

// Report is a persisted snapshot of ledger summaries grouped by account type.
// Data is derived and denormalized; it is a cache of summaries, not a source of
// truth, and may be regenerated at any time without side effects on ledger data.
// Regenerating overwrites the snapshot in place, no version history is kept.
type Report struct {
	ReportID       string     `json:"reportID"` // Primary Key (UUID)
	OrganizationID string     `json:"organizationID"`
	ReportType     ReportType `json:"reportType"`
	PeriodStart    time.Time  `json:"periodStart"`
	PeriodEnd      time.Time  `json:"periodEnd"`
	GeneratedBy    string     `json:"generatedBy"` // UserID reference
	GeneratedAt    time.Time  `json:"generatedAt"`
	Data           ReportData `json:"data"`
}

// AccountSummary pairs a ledger summary with its account's display fields, as
// read for report assembly.
type AccountSummary struct {
	Summary     LedgerSummary `json:"summary"`
	AccountCode string        `json:"accountCode"`
	AccountName string        `json:"accountName"`
	AccountType AccountType   `json:"accountType"`
}

// TrialBalanceRow represents a single row in a trial balance cross-check:
// total debits and credits of one account over the report window.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
