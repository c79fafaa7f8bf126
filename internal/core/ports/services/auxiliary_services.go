package services

import (
	"context"
	"time"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// CostCenterSvc defines cost center master data operations
type CostCenterSvc interface {
	CreateCostCenter(ctx context.Context, organizationID string, req dto.CreateCostCenterRequest, actorID string) (*domain.CostCenter, error)
	GetCostCenter(ctx context.Context, organizationID, costCenterID string, actorID string) (*domain.CostCenter, error)
	ListCostCenters(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.CostCenter, error)
	UpdateCostCenter(ctx context.Context, organizationID, costCenterID string, req dto.UpdateCostCenterRequest, actorID string) (*domain.CostCenter, error)
}

// TaxRateSvc defines tax rate master data operations
type TaxRateSvc interface {
	CreateTaxRate(ctx context.Context, organizationID string, req dto.CreateTaxRateRequest, actorID string) (*domain.TaxRate, error)
	GetTaxRate(ctx context.Context, organizationID, taxRateID string, actorID string) (*domain.TaxRate, error)
	ListTaxRates(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.TaxRate, error)
}

// BankingSvc defines bank account and reconciliation operations
type BankingSvc interface {
	CreateBankAccount(ctx context.Context, organizationID string, req dto.CreateBankAccountRequest, actorID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, organizationID string, actorID string) ([]domain.BankAccount, error)

	// Reconcile compares a statement balance against the book balance of the
	// linked ledger account at period end and records the outcome.
	Reconcile(ctx context.Context, organizationID string, req dto.ReconcileRequest, actorID string) (*domain.Reconciliation, error)
	ListReconciliations(ctx context.Context, organizationID, bankAccountID string, actorID string) ([]domain.Reconciliation, error)
}

// AssetSvc defines fixed asset registration and depreciation posting
type AssetSvc interface {
	RegisterAsset(ctx context.Context, organizationID string, req dto.RegisterAssetRequest, actorID string) (*domain.FixedAsset, error)
	GetAsset(ctx context.Context, organizationID, assetID string, actorID string) (*domain.FixedAsset, error)
	ListAssets(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.FixedAsset, error)

	// DepreciationSchedule returns the straight-line schedule of an asset with
	// posted periods marked.
	DepreciationSchedule(ctx context.Context, organizationID, assetID string, actorID string) ([]domain.DepreciationPeriod, error)

	// PostDepreciation creates and posts the journal entry for one schedule
	// period. Posting the same period twice fails with a duplicate error.
	PostDepreciation(ctx context.Context, organizationID, assetID string, req dto.PostDepreciationRequest, actorID string) (*domain.JournalEntry, error)
}

// AuditSvc records and queries the audit trail
type AuditSvc interface {
	RecordAction(ctx context.Context, organizationID, actorID, action, entityType, entityID, detail string, at time.Time) error
	EntityHistory(ctx context.Context, organizationID, entityType, entityID string, actorID string) ([]domain.AuditLog, error)
}
