package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "draft"
	Posted JournalStatus = "posted"
)

// DCIndicator marks a journal line as a debit or a credit. Direction is carried
// here, never by the sign of the amount.
type DCIndicator string

const (
	DebitLine  DCIndicator = "D"
	CreditLine DCIndicator = "C"
)

// JournalEntry represents a single financial event composed of multiple lines.
// Entries start as drafts; posting validates the double-entry balance and derives
// ledger entries. Posted entries are immutable except for un-posting.
type JournalEntry struct {
	EntryID        string        `json:"entryID"` // Primary Key (UUID)
	OrganizationID string        `json:"organizationID"`
	EntryDate      time.Time     `json:"entryDate"` // Date the event occurred
	Reference      string        `json:"reference"` // Document number, assigned when blank
	Description    string        `json:"description"`
	Status         JournalStatus `json:"status"`
	Lines          []JournalLine `json:"lines,omitempty"` // Often loaded separately
	AuditFields
}

// JournalLine is a single line item within a journal entry, affecting one account.
// Amount is strictly positive.
type JournalLine struct {
	LineID         string          `json:"lineID"` // Primary Key (UUID)
	EntryID        string          `json:"entryID"`
	OrganizationID string          `json:"organizationID"`
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"`
	DC             DCIndicator     `json:"dc"`
	CostCenterID   *string         `json:"costCenterID"` // Optional
	ProjectID      *string         `json:"projectID"`    // Optional free-form project tag
	AuditFields
}

// DebitAmount returns the line amount when the line is a debit, zero otherwise.
func (l JournalLine) DebitAmount() decimal.Decimal {
	if l.DC == DebitLine {
		return l.Amount
	}
	return decimal.Zero
}

// CreditAmount returns the line amount when the line is a credit, zero otherwise.
func (l JournalLine) CreditAmount() decimal.Decimal {
	if l.DC == CreditLine {
		return l.Amount
	}
	return decimal.Zero
}
