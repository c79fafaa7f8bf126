package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over a shared pool.
// The journal repository takes the account repository for row locking
// inside posting transactions.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return portsrepo.RepositoryProvider{
		OrganizationRepo: newPgxOrganizationRepository(pool),
		AccountRepo:      accountRepo,
		JournalRepo:      newPgxJournalRepository(pool, accountRepo),
		LedgerRepo:       newPgxLedgerRepository(pool),
		ReportingRepo:    newPgxReportingRepository(pool),
		CostCenterRepo:   newPgxCostCenterRepository(pool),
		TaxRateRepo:      newPgxTaxRateRepository(pool),
		CustomerRepo:     newPgxCustomerRepository(pool),
		ProductRepo:      newPgxProductRepository(pool),
		InvoiceRepo:      newPgxInvoiceRepository(pool),
		PaymentRepo:      newPgxPaymentRepository(pool),
		BankingRepo:      newPgxBankingRepository(pool),
		AssetRepo:        newPgxAssetRepository(pool),
		NumberingRepo:    newPgxNumberingRepository(pool),
		AuditRepo:        newPgxAuditRepository(pool),
	}
}
