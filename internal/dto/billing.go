package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to create a new customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Contact string `json:"contact" validate:"max=255"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// CreateProductRequest defines the data needed to create a new product.
type CreateProductRequest struct {
	SKU   string          `json:"sku" validate:"max=64"`
	Name  string          `json:"name" validate:"required,max=255"`
	Price decimal.Decimal `json:"price" validate:"required"`
}

// CreateInvoiceLineRequest defines one billed item of a new invoice.
type CreateInvoiceLineRequest struct {
	ProductID   *string         `json:"productID" validate:"omitempty,uuid4"`
	Description string          `json:"description" validate:"max=255"`
	Quantity    int64           `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"required"`
}

// CreateInvoiceRequest defines the data needed to create a new invoice.
type CreateInvoiceRequest struct {
	CustomerID    *string                    `json:"customerID" validate:"omitempty,uuid4"`
	InvoiceNumber string                     `json:"invoiceNumber"` // Assigned from document numbering when blank
	IssueDate     time.Time                  `json:"issueDate" validate:"required"`
	DueDate       time.Time                  `json:"dueDate" validate:"required"`
	TaxRateID     *string                    `json:"taxRateID" validate:"omitempty,uuid4"`
	Lines         []CreateInvoiceLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string               `json:"invoiceID"`
	CustomerID    *string              `json:"customerID,omitempty"`
	InvoiceNumber string               `json:"invoiceNumber"`
	IssueDate     time.Time            `json:"issueDate"`
	DueDate       time.Time            `json:"dueDate"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Tax           decimal.Decimal      `json:"tax"`
	Total         decimal.Decimal      `json:"total"`
	Status        domain.InvoiceStatus `json:"status"`
}

// RecordPaymentRequest defines the data needed to record a payment.
type RecordPaymentRequest struct {
	InvoiceID       *string              `json:"invoiceID" validate:"omitempty,uuid4"`
	Amount          decimal.Decimal      `json:"amount" validate:"required"`
	PaidAt          time.Time            `json:"paidAt" validate:"required"`
	Method          domain.PaymentMethod `json:"method" validate:"required,oneof=cash bank_transfer check other"`
	BankAccountID   *string              `json:"bankAccountID" validate:"omitempty,uuid4"`
	DepositAccountID    string           `json:"depositAccountID" validate:"required,uuid4"`    // Ledger account debited (cash/bank)
	ReceivableAccountID string           `json:"receivableAccountID" validate:"required,uuid4"` // Ledger account credited (A/R or income)
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		CustomerID:    inv.CustomerID,
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Status:        inv.Status,
	}
}
