package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	OrganizationRepo OrganizationRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalRepositoryFacade
	LedgerRepo       LedgerRepositoryFacade
	ReportingRepo    ReportingRepository
	CostCenterRepo   CostCenterRepository
	TaxRateRepo      TaxRateRepository
	CustomerRepo     CustomerRepository
	ProductRepo      ProductRepository
	InvoiceRepo      InvoiceRepositoryFacade
	PaymentRepo      PaymentRepository
	BankingRepo      BankingRepository
	AssetRepo        AssetRepository
	NumberingRepo    NumberingRepository
	AuditRepo        AuditRepository
}
