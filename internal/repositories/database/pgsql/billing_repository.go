package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
)

const invoiceColumns = `invoice_id, organization_id, customer_id, tax_rate_id, invoice_number, issue_date, due_date,
	subtotal, tax, total, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (customer_id, organization_id, name, contact, email,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		customer.CustomerID, customer.OrganizationID, customer.Name, customer.Contact, customer.Email,
		customer.CreatedAt, customer.CreatedBy, customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	return translateError(err, "save customer")
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, organizationID, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, organization_id, name, contact, email,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE organization_id = $1 AND customer_id = $2;
	`
	var c domain.Customer
	err := r.Pool.QueryRow(ctx, query, organizationID, customerID).Scan(
		&c.CustomerID, &c.OrganizationID, &c.Name, &c.Contact, &c.Email,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err, "find customer "+customerID)
	}
	return &c, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, organizationID string, limit, offset int) ([]domain.Customer, error) {
	query := `
		SELECT customer_id, organization_id, name, contact, email,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE organization_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list customers")
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(
			&c.CustomerID, &c.OrganizationID, &c.Name, &c.Contact, &c.Email,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepository {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepository = (*PgxProductRepository)(nil)

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (product_id, organization_id, sku, name, price,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID, product.OrganizationID, product.SKU, product.Name, product.Price,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	return translateError(err, "save product")
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, organizationID, productID string) (*domain.Product, error) {
	query := `
		SELECT product_id, organization_id, sku, name, price,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM products
		WHERE organization_id = $1 AND product_id = $2;
	`
	var p domain.Product
	err := r.Pool.QueryRow(ctx, query, organizationID, productID).Scan(
		&p.ProductID, &p.OrganizationID, &p.SKU, &p.Name, &p.Price,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err, "find product "+productID)
	}
	return &p, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Product, error) {
	query := `
		SELECT product_id, organization_id, sku, name, price,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM products
		WHERE organization_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ProductID, &p.OrganizationID, &p.SKU, &p.Name, &p.Price,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID, &inv.OrganizationID, &inv.CustomerID, &inv.TaxRateID, &inv.InvoiceNumber,
		&inv.IssueDate, &inv.DueDate, &inv.Subtotal, &inv.Tax, &inv.Total, &inv.Status,
		&inv.CreatedAt, &inv.CreatedBy, &inv.LastUpdatedAt, &inv.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// SaveInvoice persists a new invoice and its lines atomically.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	invoiceQuery := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, invoiceQuery,
		invoice.InvoiceID, invoice.OrganizationID, invoice.CustomerID, invoice.TaxRateID, invoice.InvoiceNumber,
		invoice.IssueDate, invoice.DueDate, invoice.Subtotal, invoice.Tax, invoice.Total, invoice.Status,
		invoice.CreatedAt, invoice.CreatedBy, invoice.LastUpdatedAt, invoice.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "insert invoice "+invoice.InvoiceNumber)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_lines (line_id, invoice_id, product_id, description, quantity, unit_price, line_total,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID, line.InvoiceID, line.ProductID, line.Description, line.Quantity, line.UnitPrice, line.LineTotal,
			line.CreatedAt, line.CreatedBy, line.LastUpdatedAt, line.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateError(err, "insert invoice lines for "+invoice.InvoiceID)
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice with its lines.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, organizationID, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE organization_id = $1 AND invoice_id = $2;`
	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, query, organizationID, invoiceID))
	if err != nil {
		return nil, translateError(err, "find invoice "+invoiceID)
	}

	lineRows, err := r.Pool.Query(ctx, `
		SELECT line_id, invoice_id, product_id, description, quantity, unit_price, line_total,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY created_at, line_id;`,
		invoiceID,
	)
	if err != nil {
		return nil, translateError(err, "find invoice lines for "+invoiceID)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var l domain.InvoiceLine
		if err := lineRows.Scan(
			&l.LineID, &l.InvoiceID, &l.ProductID, &l.Description, &l.Quantity, &l.UnitPrice, &l.LineTotal,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice line row: %w", err)
		}
		invoice.Lines = append(invoice.Lines, l)
	}
	return invoice, lineRows.Err()
}

// ListInvoices retrieves invoices of an organization, newest issue date first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, organizationID string, limit, offset int) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE organization_id = $1 ORDER BY issue_date DESC, invoice_number DESC LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list invoices")
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *invoice)
	}
	return invoices, rows.Err()
}

// UpdateInvoiceTotals writes recalculated subtotal/tax/total and line totals.
func (r *PgxInvoiceRepository) UpdateInvoiceTotals(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE invoices
		SET subtotal = $3, tax = $4, total = $5, last_updated_at = $6, last_updated_by = $7
		WHERE organization_id = $1 AND invoice_id = $2;`,
		invoice.OrganizationID, invoice.InvoiceID, invoice.Subtotal, invoice.Tax, invoice.Total,
		invoice.LastUpdatedAt, invoice.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "update invoice totals "+invoice.InvoiceID)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "update invoice totals "+invoice.InvoiceID)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`UPDATE invoice_lines SET line_total = $2 WHERE line_id = $1;`, line.LineID, line.LineTotal)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateError(err, "update invoice line totals for "+invoice.InvoiceID)
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoiceStatus writes a refreshed collection status.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, organizationID, invoiceID string, status domain.InvoiceStatus, updatedBy string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE invoices
		SET status = $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE organization_id = $1 AND invoice_id = $2;`,
		organizationID, invoiceID, status, updatedBy,
	)
	if err != nil {
		return translateError(err, "update invoice status "+invoiceID)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "update invoice status "+invoiceID)
	}
	return nil
}

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

// InsertOnPost returns a companion that inserts the payment inside the
// transaction posting its journal entry.
func (r *PgxPaymentRepository) InsertOnPost(payment domain.Payment) portsrepo.PostCompanion {
	return companionFunc(func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO payments (payment_id, organization_id, invoice_id, reference, amount, paid_at, method,
				bank_account_id, entry_id, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		_, err := tx.Exec(ctx, query,
			payment.PaymentID, payment.OrganizationID, payment.InvoiceID, payment.Reference, payment.Amount,
			payment.PaidAt, payment.Method, payment.BankAccountID, payment.EntryID,
			payment.CreatedAt, payment.CreatedBy, payment.LastUpdatedAt, payment.LastUpdatedBy,
		)
		return translateError(err, "insert payment "+payment.Reference)
	})
}

func (r *PgxPaymentRepository) ListPaymentsByInvoice(ctx context.Context, organizationID, invoiceID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, organization_id, invoice_id, reference, amount, paid_at, method,
		       bank_account_id, entry_id, created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE organization_id = $1 AND invoice_id = $2
		ORDER BY paid_at;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, invoiceID)
	if err != nil {
		return nil, translateError(err, "list payments for invoice "+invoiceID)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.PaymentID, &p.OrganizationID, &p.InvoiceID, &p.Reference, &p.Amount, &p.PaidAt, &p.Method,
			&p.BankAccountID, &p.EntryID, &p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// SumPaymentsByInvoice totals the amounts paid against an invoice.
func (r *PgxPaymentRepository) SumPaymentsByInvoice(ctx context.Context, organizationID, invoiceID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE organization_id = $1 AND invoice_id = $2;`,
		organizationID, invoiceID,
	).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, translateError(err, "sum payments for invoice "+invoiceID)
	}
	return total, nil
}
