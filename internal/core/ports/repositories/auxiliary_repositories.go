package repositories

import (
	"context"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// CostCenterRepository defines operations on cost center data
type CostCenterRepository interface {
	SaveCostCenter(ctx context.Context, cc domain.CostCenter) error
	FindCostCenterByID(ctx context.Context, organizationID, costCenterID string) (*domain.CostCenter, error)
	ListCostCenters(ctx context.Context, organizationID string, limit, offset int) ([]domain.CostCenter, error)
	UpdateCostCenter(ctx context.Context, cc domain.CostCenter) error
}

// TaxRateRepository defines operations on tax rate data
type TaxRateRepository interface {
	SaveTaxRate(ctx context.Context, rate domain.TaxRate) error
	FindTaxRateByID(ctx context.Context, organizationID, taxRateID string) (*domain.TaxRate, error)
	ListTaxRates(ctx context.Context, organizationID string) ([]domain.TaxRate, error)
	UpdateTaxRate(ctx context.Context, rate domain.TaxRate) error
}

// BankingRepository defines operations on bank accounts and reconciliations
type BankingRepository interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
	FindBankAccountByID(ctx context.Context, organizationID, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, organizationID string) ([]domain.BankAccount, error)

	SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error
	ListReconciliations(ctx context.Context, organizationID, bankAccountID string) ([]domain.Reconciliation, error)
}

// AssetRepository defines operations on fixed assets and their posted periods
type AssetRepository interface {
	SaveAsset(ctx context.Context, asset domain.FixedAsset) error
	FindAssetByID(ctx context.Context, organizationID, assetID string) (*domain.FixedAsset, error)
	ListAssets(ctx context.Context, organizationID string, limit, offset int) ([]domain.FixedAsset, error)

	// DepreciationInsertOnPost returns a companion that records the posted
	// schedule period inside the transaction posting its journal entry.
	// (asset, sequence) is unique, so a raced period rolls the posting back
	// with ErrDuplicate.
	DepreciationInsertOnPost(organizationID, assetID string, sequence int, entryID string) PostCompanion

	// FindDepreciationPostings returns posted sequence -> journal entry ID.
	FindDepreciationPostings(ctx context.Context, organizationID, assetID string) (map[int]string, error)
}

// NumberingRepository hands out sequential document numbers
type NumberingRepository interface {
	// NextDocumentNumber atomically takes the next number for the given document
	// type, creating the numbering rule with defaults when absent. The returned
	// value is fully formatted (prefix + number + suffix).
	NextDocumentNumber(ctx context.Context, organizationID string, docType domain.DocumentType) (string, error)
}

// AuditRepository stores the append-only audit trail
type AuditRepository interface {
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
	ListAuditLogsByEntity(ctx context.Context, organizationID, entityType, entityID string) ([]domain.AuditLog, error)
}
