package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to register a bank account.
type CreateBankAccountRequest struct {
	BankName        string `json:"bankName" validate:"required,max=255"`
	AccountNumber   string `json:"accountNumber" validate:"required,max=50"`
	LedgerAccountID string `json:"ledgerAccountID" validate:"required,uuid4"`
}

// ReconcileRequest defines the data needed to reconcile a bank statement.
type ReconcileRequest struct {
	BankAccountID    string          `json:"bankAccountID" validate:"required,uuid4"`
	PeriodStart      time.Time       `json:"periodStart" validate:"required"`
	PeriodEnd        time.Time       `json:"periodEnd" validate:"required"`
	StatementBalance decimal.Decimal `json:"statementBalance" validate:"required"`
}

// RegisterAssetRequest defines the data needed to register a fixed asset.
type RegisterAssetRequest struct {
	Name             string          `json:"name" validate:"required,max=255"`
	PurchaseDate     time.Time       `json:"purchaseDate" validate:"required"`
	PurchasePrice    decimal.Decimal `json:"purchasePrice" validate:"required"`
	SalvageValue     decimal.Decimal `json:"salvageValue"`
	UsefulLifeMonths int             `json:"usefulLifeMonths" validate:"required,min=1"`
}

// PostDepreciationRequest identifies a schedule period and the ledger accounts
// the depreciation journal posts against.
type PostDepreciationRequest struct {
	Sequence                 int    `json:"sequence" validate:"required,min=1"`
	ExpenseAccountID         string `json:"expenseAccountID" validate:"required,uuid4"`
	AccumulatedDepAccountID  string `json:"accumulatedDepAccountID" validate:"required,uuid4"`
}
