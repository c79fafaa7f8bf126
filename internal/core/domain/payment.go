package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates how a payment was made.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheck        PaymentMethod = "check"
	PaymentOther        PaymentMethod = "other"
)

// Payment records money received against an invoice (or standalone). Recording a
// payment posts a balanced journal entry and refreshes the invoice status; both
// happen through explicit service calls, not storage-side effects.
type Payment struct {
	PaymentID      string          `json:"paymentID"` // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"`
	InvoiceID      *string         `json:"invoiceID"`
	Reference      string          `json:"reference"` // Document number, assigned when blank
	Amount         decimal.Decimal `json:"amount"`
	PaidAt         time.Time       `json:"paidAt"`
	Method         PaymentMethod   `json:"method"`
	BankAccountID  *string         `json:"bankAccountID"` // Receiving bank account
	EntryID        *string         `json:"entryID"`       // Journal entry posted for this payment
	AuditFields
}
