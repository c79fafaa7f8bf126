package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a party an organization invoices.
type Customer struct {
	CustomerID     string `json:"customerID"` // Primary Key (UUID)
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	Contact        string `json:"contact"`
	Email          string `json:"email"`
	AuditFields
}

// Product is a sellable item with a unit price.
type Product struct {
	ProductID      string          `json:"productID"` // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	AuditFields
}

// InvoiceStatus indicates the collection state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Invoice is a billing document. Subtotal, Tax and Total are derived from the
// lines by an explicit recalculation call, never as a side effect of persistence.
// (organization, invoice_number) is unique.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"` // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"`
	CustomerID     *string         `json:"customerID"`
	TaxRateID      *string         `json:"taxRateID"`     // Rate applied on recalculation; nil means no tax
	InvoiceNumber  string          `json:"invoiceNumber"` // Document number, assigned when blank
	IssueDate      time.Time       `json:"issueDate"`
	DueDate        time.Time       `json:"dueDate"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	Status         InvoiceStatus   `json:"status"`
	Lines          []InvoiceLine   `json:"lines,omitempty"`
	AuditFields
}

// InvoiceLine is one billed item of an invoice. LineTotal = Quantity * UnitPrice.
type InvoiceLine struct {
	LineID      string          `json:"lineID"` // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"`
	ProductID   *string         `json:"productID"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	AuditFields
}
