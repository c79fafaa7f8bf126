package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// billingService implements customer/product master data, the invoice
// lifecycle, and payment recording. Invoice totals only ever change through
// explicit recalculation calls.
type billingService struct {
	BaseService
	customerRepo portsrepo.CustomerRepository
	productRepo  portsrepo.ProductRepository
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	paymentRepo  portsrepo.PaymentRepository
	taxRateRepo  portsrepo.TaxRateRepository
	numbering    portsrepo.NumberingRepository
	journalSvc   portssvc.JournalSvcFacade
}

// NewBillingService creates a new BillingService.
func NewBillingService(
	customerRepo portsrepo.CustomerRepository,
	productRepo portsrepo.ProductRepository,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	paymentRepo portsrepo.PaymentRepository,
	taxRateRepo portsrepo.TaxRateRepository,
	numbering portsrepo.NumberingRepository,
	journalSvc portssvc.JournalSvcFacade,
	authorizer portssvc.OrganizationAuthorizer,
) portssvc.BillingSvcFacade {
	return &billingService{
		BaseService:  BaseService{Authorizer: authorizer},
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		taxRateRepo:  taxRateRepo,
		numbering:    numbering,
		journalSvc:   journalSvc,
	}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

// CreateCustomer creates a new customer.
func (s *billingService) CreateCustomer(ctx context.Context, organizationID string, req dto.CreateCustomerRequest, actorID string) (*domain.Customer, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}

	customer := domain.Customer{
		CustomerID:     uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Contact:        req.Contact,
		Email:          req.Email,
		AuditFields:    domain.NewAuditFields(actorID, time.Now().UTC()),
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "failed to save customer", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	s.LogInfo(ctx, "customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// GetCustomer retrieves a customer.
func (s *billingService) GetCustomer(ctx context.Context, organizationID, customerID string, actorID string) (*domain.Customer, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, organizationID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return customer, nil
}

// ListCustomers retrieves customers of an organization.
func (s *billingService) ListCustomers(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.Customer, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	customers, err := s.customerRepo.ListCustomers(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// CreateProduct creates a new product.
func (s *billingService) CreateProduct(ctx context.Context, organizationID string, req dto.CreateProductRequest, actorID string) (*domain.Product, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, apperrors.NewValidationError("product.price", "price must not be negative")
	}

	product := domain.Product{
		ProductID:      uuid.NewString(),
		OrganizationID: organizationID,
		SKU:            req.SKU,
		Name:           req.Name,
		Price:          req.Price,
		AuditFields:    domain.NewAuditFields(actorID, time.Now().UTC()),
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "failed to save product", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	s.LogInfo(ctx, "product created", slog.String("product_id", product.ProductID))
	return &product, nil
}

// GetProduct retrieves a product.
func (s *billingService) GetProduct(ctx context.Context, organizationID, productID string, actorID string) (*domain.Product, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindProductByID(ctx, organizationID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListProducts retrieves products of an organization.
func (s *billingService) ListProducts(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.Product, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	products, err := s.productRepo.ListProducts(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// computeInvoiceTotals derives line totals, subtotal, tax and total. The tax
// rate is resolved from the invoice's linked rate; a nil link means no tax.
func (s *billingService) computeInvoiceTotals(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) error {
	subtotal := decimal.Zero
	for i := range lines {
		lines[i].LineTotal = lines[i].UnitPrice.Mul(decimal.NewFromInt(lines[i].Quantity)).Round(2)
		subtotal = subtotal.Add(lines[i].LineTotal)
	}
	invoice.Subtotal = subtotal

	invoice.Tax = decimal.Zero
	if invoice.TaxRateID != nil {
		rate, err := s.taxRateRepo.FindTaxRateByID(ctx, invoice.OrganizationID, *invoice.TaxRateID)
		if err != nil {
			return fmt.Errorf("failed to resolve tax rate %s: %w", *invoice.TaxRateID, err)
		}
		invoice.Tax = rate.Apply(subtotal)
	}
	invoice.Total = invoice.Subtotal.Add(invoice.Tax)
	return nil
}

// CreateInvoice creates a draft invoice with computed totals. A blank invoice
// number is assigned from the organization's document numbering.
func (s *billingService) CreateInvoice(ctx context.Context, organizationID string, req dto.CreateInvoiceRequest, actorID string) (*domain.Invoice, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}
	if req.DueDate.Before(req.IssueDate) {
		return nil, apperrors.NewValidationError("invoice.due_date", "due date must not precede issue date")
	}
	for _, line := range req.Lines {
		if line.UnitPrice.IsNegative() {
			return nil, apperrors.NewValidationError("invoice.unit_price", "unit price must not be negative")
		}
	}

	number := req.InvoiceNumber
	if number == "" {
		var err error
		number, err = s.numbering.NextDocumentNumber(ctx, organizationID, domain.DocumentInvoice)
		if err != nil {
			s.LogError(ctx, err, "failed to take invoice number", slog.String("organization_id", organizationID))
			return nil, fmt.Errorf("failed to take invoice number: %w", err)
		}
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:      uuid.NewString(),
		OrganizationID: organizationID,
		CustomerID:     req.CustomerID,
		TaxRateID:      req.TaxRateID,
		InvoiceNumber:  number,
		IssueDate:      req.IssueDate,
		DueDate:        req.DueDate,
		Status:         domain.InvoiceDraft,
		AuditFields:    domain.NewAuditFields(actorID, now),
	}

	lines := make([]domain.InvoiceLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoice.InvoiceID,
			ProductID:   lineReq.ProductID,
			Description: lineReq.Description,
			Quantity:    lineReq.Quantity,
			UnitPrice:   lineReq.UnitPrice,
			AuditFields: domain.NewAuditFields(actorID, now),
		}
	}

	if err := s.computeInvoiceTotals(ctx, &invoice, lines); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, lines); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: invoice number %s already in use", apperrors.ErrDuplicate, number)
		}
		s.LogError(ctx, err, "failed to save invoice", slog.String("invoice_number", number))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.LogInfo(ctx, "invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", number),
		slog.String("total", invoice.Total.String()))
	invoice.Lines = lines
	return &invoice, nil
}

// GetInvoice retrieves an invoice with its lines.
func (s *billingService) GetInvoice(ctx context.Context, organizationID, invoiceID string, actorID string) (*domain.Invoice, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// ListInvoices retrieves invoices of an organization, newest issue date first.
func (s *billingService) ListInvoices(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.Invoice, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// RecalculateInvoice recomputes line totals, subtotal, tax and total from the
// stored lines and persists the result.
func (s *billingService) RecalculateInvoice(ctx context.Context, organizationID, invoiceID string, actorID string) (*domain.Invoice, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	if err := s.computeInvoiceTotals(ctx, invoice, invoice.Lines); err != nil {
		return nil, err
	}
	invoice.Touch(actorID, time.Now().UTC())

	if err := s.invoiceRepo.UpdateInvoiceTotals(ctx, *invoice, invoice.Lines); err != nil {
		s.LogError(ctx, err, "failed to update invoice totals", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice totals: %w", err)
	}

	s.LogInfo(ctx, "invoice recalculated",
		slog.String("invoice_id", invoiceID),
		slog.String("total", invoice.Total.String()))
	return invoice, nil
}

// RefreshInvoiceStatus re-derives the status of an invoice from its recorded
// payments and due date. Draft and cancelled invoices are left alone.
func (s *billingService) RefreshInvoiceStatus(ctx context.Context, organizationID, invoiceID string, actorID string) (*domain.Invoice, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.Status == domain.InvoiceDraft || invoice.Status == domain.InvoiceCancelled {
		return invoice, nil
	}

	paid, err := s.paymentRepo.SumPaymentsByInvoice(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments for invoice %s: %w", invoiceID, err)
	}

	status := domain.InvoiceSent
	switch {
	case paid.GreaterThanOrEqual(invoice.Total) && invoice.Total.GreaterThan(decimal.Zero):
		status = domain.InvoicePaid
	case time.Now().UTC().After(invoice.DueDate):
		status = domain.InvoiceOverdue
	}

	if status == invoice.Status {
		return invoice, nil
	}
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, organizationID, invoiceID, status, actorID); err != nil {
		s.LogError(ctx, err, "failed to update invoice status", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	s.LogInfo(ctx, "invoice status refreshed",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(status)))
	invoice.Status = status
	return invoice, nil
}

// MarkInvoiceSent moves a draft invoice to sent.
func (s *billingService) MarkInvoiceSent(ctx context.Context, organizationID, invoiceID string, actorID string) error {
	return s.transitionInvoice(ctx, organizationID, invoiceID, domain.InvoiceDraft, domain.InvoiceSent, actorID)
}

// CancelInvoice cancels an invoice that has not been paid.
func (s *billingService) CancelInvoice(ctx context.Context, organizationID, invoiceID string, actorID string) error {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.Status == domain.InvoicePaid {
		return fmt.Errorf("%w: invoice %s is paid and cannot be cancelled", apperrors.ErrConflict, invoiceID)
	}
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, organizationID, invoiceID, domain.InvoiceCancelled, actorID); err != nil {
		return fmt.Errorf("failed to cancel invoice %s: %w", invoiceID, err)
	}
	s.LogInfo(ctx, "invoice cancelled", slog.String("invoice_id", invoiceID))
	return nil
}

func (s *billingService) transitionInvoice(ctx context.Context, organizationID, invoiceID string, fromStatus, toStatus domain.InvoiceStatus, actorID string) error {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if invoice.Status != fromStatus {
		return fmt.Errorf("%w: invoice %s is %s, expected %s", apperrors.ErrConflict, invoiceID, invoice.Status, fromStatus)
	}
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, organizationID, invoiceID, toStatus, actorID); err != nil {
		return fmt.Errorf("failed to update invoice %s status: %w", invoiceID, err)
	}
	s.LogInfo(ctx, "invoice status changed",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(toStatus)))
	return nil
}

// RecordPayment records a payment, posts the matching balanced journal entry
// (debit deposit account, credit receivable account), and refreshes the
// invoice status when the payment is linked to one.
func (s *billingService) RecordPayment(ctx context.Context, organizationID string, req dto.RecordPaymentRequest, actorID string) (*domain.Payment, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("payment.amount", "payment amount must be positive")
	}

	var invoice *domain.Invoice
	if req.InvoiceID != nil {
		var err error
		invoice, err = s.invoiceRepo.FindInvoiceByID(ctx, organizationID, *req.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to find invoice %s: %w", *req.InvoiceID, err)
		}
		if invoice.Status == domain.InvoiceCancelled {
			return nil, fmt.Errorf("%w: invoice %s is cancelled", apperrors.ErrConflict, invoice.InvoiceID)
		}
	}

	reference, err := s.numbering.NextDocumentNumber(ctx, organizationID, domain.DocumentPayment)
	if err != nil {
		s.LogError(ctx, err, "failed to take payment number", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to take payment number: %w", err)
	}

	description := fmt.Sprintf("Payment %s received", reference)
	if invoice != nil {
		description = fmt.Sprintf("Payment %s against invoice %s", reference, invoice.InvoiceNumber)
	}

	entry, err := s.journalSvc.CreateJournalEntry(ctx, organizationID, dto.CreateJournalEntryRequest{
		EntryDate:   req.PaidAt,
		Reference:   reference,
		Description: description,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: req.DepositAccountID, Amount: req.Amount, DC: domain.DebitLine},
			{AccountID: req.ReceivableAccountID, Amount: req.Amount, DC: domain.CreditLine},
		},
	}, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment journal entry: %w", err)
	}

	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		OrganizationID: organizationID,
		InvoiceID:      req.InvoiceID,
		Reference:      reference,
		Amount:         req.Amount,
		PaidAt:         req.PaidAt,
		Method:         req.Method,
		BankAccountID:  req.BankAccountID,
		EntryID:        &entry.EntryID,
		AuditFields:    domain.NewAuditFields(actorID, time.Now().UTC()),
	}

	// The payment row rides in the posting transaction: either the ledger
	// movement and the payment both commit, or neither does.
	if _, err := s.journalSvc.PostJournalEntry(ctx, organizationID, entry.EntryID, actorID, s.paymentRepo.InsertOnPost(payment)); err != nil {
		s.LogError(ctx, err, "failed to post payment journal entry", slog.String("reference", reference))
		return nil, fmt.Errorf("failed to post payment journal entry: %w", err)
	}

	if invoice != nil {
		if _, err := s.RefreshInvoiceStatus(ctx, organizationID, invoice.InvoiceID, actorID); err != nil {
			// The payment and its journal entry are committed; a stale status is
			// recoverable by calling RefreshInvoiceStatus again.
			s.LogError(ctx, err, "failed to refresh invoice status after payment",
				slog.String("invoice_id", invoice.InvoiceID))
		}
	}

	s.LogInfo(ctx, "payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("reference", reference),
		slog.String("amount", req.Amount.String()))
	return &payment, nil
}

// ListPaymentsByInvoice retrieves payments recorded against an invoice.
func (s *billingService) ListPaymentsByInvoice(ctx context.Context, organizationID, invoiceID string, actorID string) ([]domain.Payment, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByInvoice(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for invoice %s: %w", invoiceID, err)
	}
	return payments, nil
}

// InvoicePaidTotal totals the amounts paid against an invoice.
func (s *billingService) InvoicePaidTotal(ctx context.Context, organizationID, invoiceID string, actorID string) (decimal.Decimal, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return decimal.Zero, err
	}
	total, err := s.paymentRepo.SumPaymentsByInvoice(ctx, organizationID, invoiceID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments for invoice %s: %w", invoiceID, err)
	}
	return total, nil
}
