package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// stubCompanion is a no-op transactional companion for asserting which
// companion a posting call was handed.
type stubCompanion struct {
	name string
}

var _ portsrepo.PostCompanion = (*stubCompanion)(nil)

func (c *stubCompanion) Apply(ctx context.Context, tx pgx.Tx) error { return nil }

// --- Mock OrganizationAuthorizer ---

type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.OrganizationAuthorizer = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) AuthorizeAction(ctx context.Context, userID, organizationID string, minRole domain.OrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, minRole)
	return args.Error(0)
}

// --- Mock AuditSvc ---

type MockAuditService struct {
	mock.Mock
}

var _ portssvc.AuditSvc = (*MockAuditService)(nil)

func (m *MockAuditService) RecordAction(ctx context.Context, organizationID, actorID, action, entityType, entityID, detail string, at time.Time) error {
	args := m.Called(ctx, organizationID, actorID, action, entityType, entityID, detail, at)
	return args.Error(0)
}

func (m *MockAuditService) EntityHistory(ctx context.Context, organizationID, entityType, entityID string, actorID string) ([]domain.AuditLog, error) {
	args := m.Called(ctx, organizationID, entityType, entityID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, organizationID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) CountLinesByAccount(ctx context.Context, organizationID, accountID string) (int64, error) {
	args := m.Called(ctx, organizationID, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteDraftEntry(ctx context.Context, organizationID, entryID string) error {
	args := m.Called(ctx, organizationID, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, derived []domain.LedgerEntry, companions ...portsrepo.PostCompanion) error {
	callArgs := []any{ctx, entry, derived}
	for _, c := range companions {
		callArgs = append(callArgs, c)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockJournalRepository) UnpostEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListChildAccounts(ctx context.Context, organizationID, parentAccountID string) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, parentAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, organizationID, accountID string) error {
	args := m.Called(ctx, organizationID, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) AccountFullName(ctx context.Context, organizationID, accountID string) (string, error) {
	args := m.Called(ctx, organizationID, accountID)
	return args.String(0), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, organizationID, accountID string, actorID string) error {
	args := m.Called(ctx, organizationID, accountID, actorID)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) EntriesByAccount(ctx context.Context, organizationID, accountID string, from, to *time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, organizationID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) LastBalanceBefore(ctx context.Context, organizationID, accountID string, before time.Time) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, organizationID, accountID, before)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockLedgerRepository) ListActiveAccountIDs(ctx context.Context, organizationID string, through time.Time) ([]string, error) {
	args := m.Called(ctx, organizationID, through)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLedgerRepository) RebuildAccountProjection(ctx context.Context, organizationID, accountID string, from time.Time) error {
	args := m.Called(ctx, organizationID, accountID, from)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpsertSummary(ctx context.Context, summary domain.LedgerSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindSummary(ctx context.Context, organizationID, accountID string, periodStart, periodEnd time.Time) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, organizationID, accountID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockLedgerRepository) SummariesOverlapping(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) ([]domain.AccountSummary, error) {
	args := m.Called(ctx, organizationID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountSummary), args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) SaveReport(ctx context.Context, report domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportingRepository) FindReportByID(ctx context.Context, organizationID, reportID string) (*domain.Report, error) {
	args := m.Called(ctx, organizationID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportingRepository) ListReports(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Report, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, organizationID string, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Mock JournalService (as used by billing and asset services) ---

type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListJournalEntries(ctx context.Context, organizationID string, params dto.ListJournalEntriesParams, actorID string) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, organizationID, params, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockJournalService) CreateJournalEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) UpdateJournalEntry(ctx context.Context, organizationID, entryID string, req dto.UpdateJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) DeleteJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) error {
	args := m.Called(ctx, organizationID, entryID, actorID)
	return args.Error(0)
}

func (m *MockJournalService) PostJournalEntry(ctx context.Context, organizationID, entryID string, actorID string, companions ...portsrepo.PostCompanion) (*domain.JournalEntry, error) {
	callArgs := []any{ctx, organizationID, entryID, actorID}
	for _, c := range companions {
		callArgs = append(callArgs, c)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) UnpostJournalEntry(ctx context.Context, organizationID, entryID string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepository = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, organizationID, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, organizationID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, organizationID string, limit, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// --- Mock ProductRepository ---

type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, organizationID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, organizationID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, organizationID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, organizationID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, organizationID string, limit, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	args := m.Called(ctx, invoice, lines)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceTotals(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	args := m.Called(ctx, invoice, lines)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, organizationID, invoiceID string, status domain.InvoiceStatus, updatedBy string) error {
	args := m.Called(ctx, organizationID, invoiceID, status, updatedBy)
	return args.Error(0)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepository = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) InsertOnPost(payment domain.Payment) portsrepo.PostCompanion {
	args := m.Called(payment)
	return args.Get(0).(portsrepo.PostCompanion)
}

func (m *MockPaymentRepository) ListPaymentsByInvoice(ctx context.Context, organizationID, invoiceID string) ([]domain.Payment, error) {
	args := m.Called(ctx, organizationID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumPaymentsByInvoice(ctx context.Context, organizationID, invoiceID string) (decimal.Decimal, error) {
	args := m.Called(ctx, organizationID, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock TaxRateRepository ---

type MockTaxRateRepository struct {
	mock.Mock
}

var _ portsrepo.TaxRateRepository = (*MockTaxRateRepository)(nil)

func (m *MockTaxRateRepository) SaveTaxRate(ctx context.Context, rate domain.TaxRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockTaxRateRepository) FindTaxRateByID(ctx context.Context, organizationID, taxRateID string) (*domain.TaxRate, error) {
	args := m.Called(ctx, organizationID, taxRateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) ListTaxRates(ctx context.Context, organizationID string) ([]domain.TaxRate, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxRate), args.Error(1)
}

func (m *MockTaxRateRepository) UpdateTaxRate(ctx context.Context, rate domain.TaxRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock BankingRepository ---

type MockBankingRepository struct {
	mock.Mock
}

var _ portsrepo.BankingRepository = (*MockBankingRepository)(nil)

func (m *MockBankingRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankingRepository) FindBankAccountByID(ctx context.Context, organizationID, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, organizationID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankingRepository) ListBankAccounts(ctx context.Context, organizationID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankingRepository) SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockBankingRepository) ListReconciliations(ctx context.Context, organizationID, bankAccountID string) ([]domain.Reconciliation, error) {
	args := m.Called(ctx, organizationID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reconciliation), args.Error(1)
}

// --- Mock AssetRepository ---

type MockAssetRepository struct {
	mock.Mock
}

var _ portsrepo.AssetRepository = (*MockAssetRepository)(nil)

func (m *MockAssetRepository) SaveAsset(ctx context.Context, asset domain.FixedAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) FindAssetByID(ctx context.Context, organizationID, assetID string) (*domain.FixedAsset, error) {
	args := m.Called(ctx, organizationID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) ListAssets(ctx context.Context, organizationID string, limit, offset int) ([]domain.FixedAsset, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FixedAsset), args.Error(1)
}

func (m *MockAssetRepository) DepreciationInsertOnPost(organizationID, assetID string, sequence int, entryID string) portsrepo.PostCompanion {
	args := m.Called(organizationID, assetID, sequence, entryID)
	return args.Get(0).(portsrepo.PostCompanion)
}

func (m *MockAssetRepository) FindDepreciationPostings(ctx context.Context, organizationID, assetID string) (map[int]string, error) {
	args := m.Called(ctx, organizationID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]string), args.Error(1)
}

// --- Mock NumberingRepository ---

type MockNumberingRepository struct {
	mock.Mock
}

var _ portsrepo.NumberingRepository = (*MockNumberingRepository)(nil)

func (m *MockNumberingRepository) NextDocumentNumber(ctx context.Context, organizationID string, docType domain.DocumentType) (string, error) {
	args := m.Called(ctx, organizationID, docType)
	return args.String(0), args.Error(1)
}

// --- Mock OrganizationRepository ---

type MockOrganizationRepository struct {
	mock.Mock
}

var _ portsrepo.OrganizationRepositoryFacade = (*MockOrganizationRepository)(nil)

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizations(ctx context.Context, limit int, offset int) ([]domain.Organization, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) DeleteOrganization(ctx context.Context, organizationID string) error {
	args := m.Called(ctx, organizationID)
	return args.Error(0)
}

func (m *MockOrganizationRepository) SaveMember(ctx context.Context, member domain.OrganizationMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockOrganizationRepository) FindMember(ctx context.Context, organizationID, userID string) (*domain.OrganizationMember, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationMember), args.Error(1)
}

func (m *MockOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.OrganizationMember, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrganizationMember), args.Error(1)
}

func (m *MockOrganizationRepository) UpdateMember(ctx context.Context, member domain.OrganizationMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
