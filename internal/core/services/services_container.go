package services

import (
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Organization first: it is the authorizer every other service depends on.
	container.Organization = NewOrganizationService(repos.OrganizationRepo)
	authorizer := portssvc.OrganizationAuthorizer(container.Organization)

	container.Audit = NewAuditService(repos.AuditRepo, authorizer)
	container.Account = NewAccountService(repos.AccountRepo, repos.JournalRepo, authorizer)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account, authorizer, container.Audit)
	container.Ledger = NewLedgerService(repos.LedgerRepo, authorizer)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.LedgerRepo, authorizer)
	container.CostCenter = NewCostCenterService(repos.CostCenterRepo, authorizer)
	container.TaxRate = NewTaxRateService(repos.TaxRateRepo, authorizer)
	container.Billing = NewBillingService(
		repos.CustomerRepo,
		repos.ProductRepo,
		repos.InvoiceRepo,
		repos.PaymentRepo,
		repos.TaxRateRepo,
		repos.NumberingRepo,
		container.Journal,
		authorizer,
	)
	container.Banking = NewBankingService(repos.BankingRepo, repos.AccountRepo, repos.LedgerRepo, authorizer)
	container.Asset = NewAssetService(repos.AssetRepo, repos.NumberingRepo, container.Journal, authorizer)

	return container
}
