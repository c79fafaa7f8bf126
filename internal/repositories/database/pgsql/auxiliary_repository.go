package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
)

type PgxCostCenterRepository struct {
	BaseRepository
}

// newPgxCostCenterRepository creates a new repository for cost center data.
func newPgxCostCenterRepository(pool *pgxpool.Pool) portsrepo.CostCenterRepository {
	return &PgxCostCenterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CostCenterRepository = (*PgxCostCenterRepository)(nil)

func (r *PgxCostCenterRepository) SaveCostCenter(ctx context.Context, cc domain.CostCenter) error {
	query := `
		INSERT INTO cost_centers (cost_center_id, organization_id, code, name, description,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		cc.CostCenterID, cc.OrganizationID, cc.Code, cc.Name, cc.Description,
		cc.CreatedAt, cc.CreatedBy, cc.LastUpdatedAt, cc.LastUpdatedBy,
	)
	return translateError(err, "save cost center "+cc.Code)
}

func (r *PgxCostCenterRepository) FindCostCenterByID(ctx context.Context, organizationID, costCenterID string) (*domain.CostCenter, error) {
	query := `
		SELECT cost_center_id, organization_id, code, name, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM cost_centers
		WHERE organization_id = $1 AND cost_center_id = $2;
	`
	var cc domain.CostCenter
	err := r.Pool.QueryRow(ctx, query, organizationID, costCenterID).Scan(
		&cc.CostCenterID, &cc.OrganizationID, &cc.Code, &cc.Name, &cc.Description,
		&cc.CreatedAt, &cc.CreatedBy, &cc.LastUpdatedAt, &cc.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err, "find cost center "+costCenterID)
	}
	return &cc, nil
}

func (r *PgxCostCenterRepository) ListCostCenters(ctx context.Context, organizationID string, limit, offset int) ([]domain.CostCenter, error) {
	query := `
		SELECT cost_center_id, organization_id, code, name, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM cost_centers
		WHERE organization_id = $1
		ORDER BY code
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list cost centers")
	}
	defer rows.Close()

	var centers []domain.CostCenter
	for rows.Next() {
		var cc domain.CostCenter
		if err := rows.Scan(
			&cc.CostCenterID, &cc.OrganizationID, &cc.Code, &cc.Name, &cc.Description,
			&cc.CreatedAt, &cc.CreatedBy, &cc.LastUpdatedAt, &cc.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cost center row: %w", err)
		}
		centers = append(centers, cc)
	}
	return centers, rows.Err()
}

func (r *PgxCostCenterRepository) UpdateCostCenter(ctx context.Context, cc domain.CostCenter) error {
	query := `
		UPDATE cost_centers
		SET name = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1 AND cost_center_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		cc.OrganizationID, cc.CostCenterID, cc.Name, cc.Description, cc.LastUpdatedAt, cc.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "update cost center "+cc.CostCenterID)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "update cost center "+cc.CostCenterID)
	}
	return nil
}

type PgxTaxRateRepository struct {
	BaseRepository
}

// newPgxTaxRateRepository creates a new repository for tax rate data.
func newPgxTaxRateRepository(pool *pgxpool.Pool) portsrepo.TaxRateRepository {
	return &PgxTaxRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaxRateRepository = (*PgxTaxRateRepository)(nil)

func (r *PgxTaxRateRepository) SaveTaxRate(ctx context.Context, rate domain.TaxRate) error {
	query := `
		INSERT INTO tax_rates (tax_rate_id, organization_id, name, percentage,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.TaxRateID, rate.OrganizationID, rate.Name, rate.Percentage,
		rate.CreatedAt, rate.CreatedBy, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	return translateError(err, "save tax rate "+rate.Name)
}

func (r *PgxTaxRateRepository) FindTaxRateByID(ctx context.Context, organizationID, taxRateID string) (*domain.TaxRate, error) {
	query := `
		SELECT tax_rate_id, organization_id, name, percentage,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM tax_rates
		WHERE organization_id = $1 AND tax_rate_id = $2;
	`
	var rate domain.TaxRate
	err := r.Pool.QueryRow(ctx, query, organizationID, taxRateID).Scan(
		&rate.TaxRateID, &rate.OrganizationID, &rate.Name, &rate.Percentage,
		&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err, "find tax rate "+taxRateID)
	}
	return &rate, nil
}

func (r *PgxTaxRateRepository) ListTaxRates(ctx context.Context, organizationID string) ([]domain.TaxRate, error) {
	query := `
		SELECT tax_rate_id, organization_id, name, percentage,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM tax_rates
		WHERE organization_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, translateError(err, "list tax rates")
	}
	defer rows.Close()

	var rates []domain.TaxRate
	for rows.Next() {
		var rate domain.TaxRate
		if err := rows.Scan(
			&rate.TaxRateID, &rate.OrganizationID, &rate.Name, &rate.Percentage,
			&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tax rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

func (r *PgxTaxRateRepository) UpdateTaxRate(ctx context.Context, rate domain.TaxRate) error {
	query := `
		UPDATE tax_rates
		SET name = $3, percentage = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1 AND tax_rate_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		rate.OrganizationID, rate.TaxRateID, rate.Name, rate.Percentage, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "update tax rate "+rate.TaxRateID)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "update tax rate "+rate.TaxRateID)
	}
	return nil
}

type PgxBankingRepository struct {
	BaseRepository
}

// newPgxBankingRepository creates a new repository for bank accounts and reconciliations.
func newPgxBankingRepository(pool *pgxpool.Pool) portsrepo.BankingRepository {
	return &PgxBankingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankingRepository = (*PgxBankingRepository)(nil)

func (r *PgxBankingRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (bank_account_id, organization_id, bank_name, account_number, ledger_account_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.BankAccountID, account.OrganizationID, account.BankName, account.AccountNumber, account.LedgerAccountID,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	return translateError(err, "save bank account")
}

func (r *PgxBankingRepository) FindBankAccountByID(ctx context.Context, organizationID, bankAccountID string) (*domain.BankAccount, error) {
	query := `
		SELECT bank_account_id, organization_id, bank_name, account_number, ledger_account_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE organization_id = $1 AND bank_account_id = $2;
	`
	var a domain.BankAccount
	err := r.Pool.QueryRow(ctx, query, organizationID, bankAccountID).Scan(
		&a.BankAccountID, &a.OrganizationID, &a.BankName, &a.AccountNumber, &a.LedgerAccountID,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err, "find bank account "+bankAccountID)
	}
	return &a, nil
}

func (r *PgxBankingRepository) ListBankAccounts(ctx context.Context, organizationID string) ([]domain.BankAccount, error) {
	query := `
		SELECT bank_account_id, organization_id, bank_name, account_number, ledger_account_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE organization_id = $1
		ORDER BY bank_name, account_number;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, translateError(err, "list bank accounts")
	}
	defer rows.Close()

	var accounts []domain.BankAccount
	for rows.Next() {
		var a domain.BankAccount
		if err := rows.Scan(
			&a.BankAccountID, &a.OrganizationID, &a.BankName, &a.AccountNumber, &a.LedgerAccountID,
			&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *PgxBankingRepository) SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	query := `
		INSERT INTO reconciliations (reconciliation_id, organization_id, bank_account_id, period_start, period_end,
			statement_balance, book_balance, difference, reconciled,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		rec.ReconciliationID, rec.OrganizationID, rec.BankAccountID, rec.PeriodStart, rec.PeriodEnd,
		rec.StatementBalance, rec.BookBalance, rec.Difference, rec.Reconciled,
		rec.CreatedAt, rec.CreatedBy, rec.LastUpdatedAt, rec.LastUpdatedBy,
	)
	return translateError(err, "save reconciliation")
}

func (r *PgxBankingRepository) ListReconciliations(ctx context.Context, organizationID, bankAccountID string) ([]domain.Reconciliation, error) {
	query := `
		SELECT reconciliation_id, organization_id, bank_account_id, period_start, period_end,
		       statement_balance, book_balance, difference, reconciled,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM reconciliations
		WHERE organization_id = $1 AND bank_account_id = $2
		ORDER BY period_end DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, bankAccountID)
	if err != nil {
		return nil, translateError(err, "list reconciliations")
	}
	defer rows.Close()

	var recs []domain.Reconciliation
	for rows.Next() {
		var rec domain.Reconciliation
		if err := rows.Scan(
			&rec.ReconciliationID, &rec.OrganizationID, &rec.BankAccountID, &rec.PeriodStart, &rec.PeriodEnd,
			&rec.StatementBalance, &rec.BookBalance, &rec.Difference, &rec.Reconciled,
			&rec.CreatedAt, &rec.CreatedBy, &rec.LastUpdatedAt, &rec.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation row: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for fixed asset data.
func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepository {
	return &PgxAssetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssetRepository = (*PgxAssetRepository)(nil)

func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.FixedAsset) error {
	query := `
		INSERT INTO fixed_assets (asset_id, organization_id, name, reference, purchase_date, purchase_price,
			salvage_value, useful_life_months, depreciation_method,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		asset.AssetID, asset.OrganizationID, asset.Name, asset.Reference, asset.PurchaseDate, asset.PurchasePrice,
		asset.SalvageValue, asset.UsefulLifeMonths, asset.DepreciationMethod,
		asset.CreatedAt, asset.CreatedBy, asset.LastUpdatedAt, asset.LastUpdatedBy,
	)
	return translateError(err, "save asset "+asset.Reference)
}

func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, organizationID, assetID string) (*domain.FixedAsset, error) {
	query := `
		SELECT asset_id, organization_id, name, reference, purchase_date, purchase_price,
		       salvage_value, useful_life_months, depreciation_method,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM fixed_assets
		WHERE organization_id = $1 AND asset_id = $2;
	`
	var a domain.FixedAsset
	err := r.Pool.QueryRow(ctx, query, organizationID, assetID).Scan(
		&a.AssetID, &a.OrganizationID, &a.Name, &a.Reference, &a.PurchaseDate, &a.PurchasePrice,
		&a.SalvageValue, &a.UsefulLifeMonths, &a.DepreciationMethod,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err, "find asset "+assetID)
	}
	return &a, nil
}

func (r *PgxAssetRepository) ListAssets(ctx context.Context, organizationID string, limit, offset int) ([]domain.FixedAsset, error) {
	query := `
		SELECT asset_id, organization_id, name, reference, purchase_date, purchase_price,
		       salvage_value, useful_life_months, depreciation_method,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM fixed_assets
		WHERE organization_id = $1
		ORDER BY purchase_date DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list assets")
	}
	defer rows.Close()

	var assets []domain.FixedAsset
	for rows.Next() {
		var a domain.FixedAsset
		if err := rows.Scan(
			&a.AssetID, &a.OrganizationID, &a.Name, &a.Reference, &a.PurchaseDate, &a.PurchasePrice,
			&a.SalvageValue, &a.UsefulLifeMonths, &a.DepreciationMethod,
			&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// DepreciationInsertOnPost returns a companion that records the posted
// schedule period inside the transaction posting its journal entry.
// (asset, sequence) is unique, so a raced period rolls the posting back with
// ErrDuplicate.
func (r *PgxAssetRepository) DepreciationInsertOnPost(organizationID, assetID string, sequence int, entryID string) portsrepo.PostCompanion {
	return companionFunc(func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO asset_depreciation_postings (organization_id, asset_id, sequence, entry_id, posted_at)
			VALUES ($1, $2, $3, $4, NOW());
		`
		_, err := tx.Exec(ctx, query, organizationID, assetID, sequence, entryID)
		return translateError(err, fmt.Sprintf("record depreciation posting %d for asset %s", sequence, assetID))
	})
}

func (r *PgxAssetRepository) FindDepreciationPostings(ctx context.Context, organizationID, assetID string) (map[int]string, error) {
	query := `
		SELECT sequence, entry_id FROM asset_depreciation_postings
		WHERE organization_id = $1 AND asset_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, assetID)
	if err != nil {
		return nil, translateError(err, "list depreciation postings for asset "+assetID)
	}
	defer rows.Close()

	postings := make(map[int]string)
	for rows.Next() {
		var sequence int
		var entryID string
		if err := rows.Scan(&sequence, &entryID); err != nil {
			return nil, fmt.Errorf("failed to scan depreciation posting row: %w", err)
		}
		postings[sequence] = entryID
	}
	return postings, rows.Err()
}

type PgxNumberingRepository struct {
	BaseRepository
}

// newPgxNumberingRepository creates a new repository for document numbering.
func newPgxNumberingRepository(pool *pgxpool.Pool) portsrepo.NumberingRepository {
	return &PgxNumberingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.NumberingRepository = (*PgxNumberingRepository)(nil)

// defaultPrefixes seed a numbering rule the first time a document type is used.
var defaultPrefixes = map[domain.DocumentType]string{
	domain.DocumentJournal: "JE-",
	domain.DocumentInvoice: "INV-",
	domain.DocumentPayment: "PAY-",
	domain.DocumentAsset:   "FA-",
}

// NextDocumentNumber atomically takes the next number for the given document
// type. The upsert bumps next_number under a row lock so concurrent takers
// never receive the same value.
func (r *PgxNumberingRepository) NextDocumentNumber(ctx context.Context, organizationID string, docType domain.DocumentType) (string, error) {
	query := `
		INSERT INTO organization_numbering (numbering_id, organization_id, document_type, prefix, suffix, next_number)
		VALUES (gen_random_uuid(), $1, $2, $3, '', 2)
		ON CONFLICT (organization_id, document_type) DO UPDATE
		SET next_number = organization_numbering.next_number + 1
		RETURNING prefix, suffix, next_number - 1;
	`
	var prefix, suffix string
	var taken int64
	err := r.Pool.QueryRow(ctx, query, organizationID, docType, defaultPrefixes[docType]).Scan(&prefix, &suffix, &taken)
	if err != nil {
		return "", translateError(err, "take next document number")
	}
	return fmt.Sprintf("%s%06d%s", prefix, taken, suffix), nil
}

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (audit_log_id, organization_id, actor_id, action, entity_type, entity_id, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.AuditLogID, entry.OrganizationID, entry.ActorID, entry.Action,
		entry.EntityType, entry.EntityID, entry.Detail, entry.OccurredAt,
	)
	return translateError(err, "save audit log")
}

func (r *PgxAuditRepository) ListAuditLogsByEntity(ctx context.Context, organizationID, entityType, entityID string) ([]domain.AuditLog, error) {
	query := `
		SELECT audit_log_id, organization_id, actor_id, action, entity_type, entity_id, detail, occurred_at
		FROM audit_logs
		WHERE organization_id = $1 AND entity_type = $2 AND entity_id = $3
		ORDER BY occurred_at;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, entityType, entityID)
	if err != nil {
		return nil, translateError(err, "list audit logs")
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var l domain.AuditLog
		if err := rows.Scan(
			&l.AuditLogID, &l.OrganizationID, &l.ActorID, &l.Action,
			&l.EntityType, &l.EntityID, &l.Detail, &l.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
