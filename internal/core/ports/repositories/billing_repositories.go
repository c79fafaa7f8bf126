package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// CustomerRepository defines operations on customer data
type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, organizationID, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, organizationID string, limit, offset int) ([]domain.Customer, error)
}

// ProductRepository defines operations on product data
type ProductRepository interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, organizationID, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Product, error)
}

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its lines.
	FindInvoiceByID(ctx context.Context, organizationID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices of an organization, newest issue date first.
	ListInvoices(ctx context.Context, organizationID string, limit, offset int) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice and its lines atomically.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error

	// UpdateInvoiceTotals writes recalculated subtotal/tax/total and line totals.
	UpdateInvoiceTotals(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error

	// UpdateInvoiceStatus writes a refreshed collection status.
	UpdateInvoiceStatus(ctx context.Context, organizationID, invoiceID string, status domain.InvoiceStatus, updatedBy string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// PaymentRepository defines operations on payment data
type PaymentRepository interface {
	// InsertOnPost returns a companion that inserts the payment inside the
	// transaction posting its journal entry, so a posted movement can never
	// exist without its payment row.
	InsertOnPost(payment domain.Payment) PostCompanion

	// ListPaymentsByInvoice retrieves payments recorded against an invoice.
	ListPaymentsByInvoice(ctx context.Context, organizationID, invoiceID string) ([]domain.Payment, error)

	// SumPaymentsByInvoice totals the amounts paid against an invoice.
	SumPaymentsByInvoice(ctx context.Context, organizationID, invoiceID string) (decimal.Decimal, error)
}
