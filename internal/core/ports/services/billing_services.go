package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// CustomerSvc defines customer master data operations
type CustomerSvc interface {
	CreateCustomer(ctx context.Context, organizationID string, req dto.CreateCustomerRequest, actorID string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, organizationID, customerID string, actorID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.Customer, error)
}

// ProductSvc defines product master data operations
type ProductSvc interface {
	CreateProduct(ctx context.Context, organizationID string, req dto.CreateProductRequest, actorID string) (*domain.Product, error)
	GetProduct(ctx context.Context, organizationID, productID string, actorID string) (*domain.Product, error)
	ListProducts(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.Product, error)
}

// InvoiceSvc defines invoice lifecycle operations. Totals are recalculated
// only through explicit calls, never as a side effect of saving.
type InvoiceSvc interface {
	CreateInvoice(ctx context.Context, organizationID string, req dto.CreateInvoiceRequest, actorID string) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, organizationID, invoiceID string, actorID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.Invoice, error)

	// RecalculateInvoice recomputes line totals, subtotal, tax and total from
	// the stored lines and persists the result.
	RecalculateInvoice(ctx context.Context, organizationID, invoiceID string, actorID string) (*domain.Invoice, error)

	// RefreshInvoiceStatus re-derives the status of an invoice from its recorded
	// payments and due date.
	RefreshInvoiceStatus(ctx context.Context, organizationID, invoiceID string, actorID string) (*domain.Invoice, error)

	MarkInvoiceSent(ctx context.Context, organizationID, invoiceID string, actorID string) error
	CancelInvoice(ctx context.Context, organizationID, invoiceID string, actorID string) error
}

// PaymentSvc defines payment recording. Recording a payment against an
// invoice creates a balanced journal entry (debit deposit account, credit
// receivable account) and posts it.
type PaymentSvc interface {
	RecordPayment(ctx context.Context, organizationID string, req dto.RecordPaymentRequest, actorID string) (*domain.Payment, error)
	ListPaymentsByInvoice(ctx context.Context, organizationID, invoiceID string, actorID string) ([]domain.Payment, error)
	InvoicePaidTotal(ctx context.Context, organizationID, invoiceID string, actorID string) (decimal.Decimal, error)
}

// BillingSvcFacade combines the billing service interfaces
type BillingSvcFacade interface {
	CustomerSvc
	ProductSvc
	InvoiceSvc
	PaymentSvc
}
