package services

// ServiceContainer holds all service facades the application wires at startup.
type ServiceContainer struct {
	Organization OrganizationSvcFacade
	Account      AccountSvcFacade
	Journal      JournalSvcFacade
	Ledger       LedgerSvcFacade
	Reporting    ReportingSvc
	Billing      BillingSvcFacade
	CostCenter   CostCenterSvc
	TaxRate      TaxRateSvc
	Banking      BankingSvc
	Asset        AssetSvc
	Audit        AuditSvc
}
