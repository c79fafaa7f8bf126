package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// LedgerEntryResponse defines the data returned for one ledger movement.
type LedgerEntryResponse struct {
	LedgerEntryID string          `json:"ledgerEntryID"`
	AccountID     string          `json:"accountID"`
	Date          time.Time       `json:"date"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
}

// LedgerSummaryResponse defines the data returned for a period rollup.
type LedgerSummaryResponse struct {
	SummaryID      string          `json:"summaryID"`
	AccountID      string          `json:"accountID"`
	PeriodStart    time.Time       `json:"periodStart"`
	PeriodEnd      time.Time       `json:"periodEnd"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerEntryID: e.LedgerEntryID,
		AccountID:     e.AccountID,
		Date:          e.Date,
		Debit:         e.Debit,
		Credit:        e.Credit,
		Balance:       e.Balance,
	}
}

// ToLedgerEntryResponses converts a slice of ledger entries to response DTOs.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}

// ToLedgerSummaryResponse converts a domain.LedgerSummary to its response DTO.
func ToLedgerSummaryResponse(s *domain.LedgerSummary) LedgerSummaryResponse {
	return LedgerSummaryResponse{
		SummaryID:      s.SummaryID,
		AccountID:      s.AccountID,
		PeriodStart:    s.PeriodStart,
		PeriodEnd:      s.PeriodEnd,
		OpeningBalance: s.OpeningBalance,
		DebitTotal:     s.DebitTotal,
		CreditTotal:    s.CreditTotal,
		ClosingBalance: s.ClosingBalance,
	}
}
