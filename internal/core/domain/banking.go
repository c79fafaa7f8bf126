package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is a real-world bank account of an organization, mapped to a
// ledger account so its book balance can be derived from ledger entries.
// (organization, account_number) is unique.
type BankAccount struct {
	BankAccountID   string `json:"bankAccountID"` // Primary Key (UUID)
	OrganizationID  string `json:"organizationID"`
	BankName        string `json:"bankName"`
	AccountNumber   string `json:"accountNumber"`
	LedgerAccountID string `json:"ledgerAccountID"` // FK -> accounts, postable asset account
	AuditFields
}

// Reconciliation compares a bank statement balance against the book balance
// derived from the ledger for the statement period. Difference is
// StatementBalance - book closing balance; the account is reconciled when the
// difference is zero.
type Reconciliation struct {
	ReconciliationID string          `json:"reconciliationID"` // Primary Key (UUID)
	OrganizationID   string          `json:"organizationID"`
	BankAccountID    string          `json:"bankAccountID"`
	PeriodStart      time.Time       `json:"periodStart"`
	PeriodEnd        time.Time       `json:"periodEnd"`
	StatementBalance decimal.Decimal `json:"statementBalance"`
	BookBalance      decimal.Decimal `json:"bookBalance"`
	Difference       decimal.Decimal `json:"difference"`
	Reconciled       bool            `json:"reconciled"`
	AuditFields
}
