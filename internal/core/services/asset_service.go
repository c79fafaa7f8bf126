package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/dto"
	"github.com/bookkeepd/bookkeepd/internal/utils/accounting"
)

// assetService manages fixed assets and posts their depreciation schedules to
// the journal one period at a time.
type assetService struct {
	BaseService
	assetRepo  portsrepo.AssetRepository
	numbering  portsrepo.NumberingRepository
	journalSvc portssvc.JournalSvcFacade
}

// NewAssetService creates a new AssetService.
func NewAssetService(assetRepo portsrepo.AssetRepository, numbering portsrepo.NumberingRepository, journalSvc portssvc.JournalSvcFacade, authorizer portssvc.OrganizationAuthorizer) portssvc.AssetSvc {
	return &assetService{
		BaseService: BaseService{Authorizer: authorizer},
		assetRepo:   assetRepo,
		numbering:   numbering,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.AssetSvc = (*assetService)(nil)

// RegisterAsset registers a depreciable fixed asset. A blank reference is
// assigned from the organization's document numbering.
func (s *assetService) RegisterAsset(ctx context.Context, organizationID string, req dto.RegisterAssetRequest, actorID string) (*domain.FixedAsset, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}
	if req.SalvageValue.GreaterThan(req.PurchasePrice) {
		return nil, apperrors.NewValidationError("asset.salvage_value", "salvage value must not exceed purchase price")
	}
	if req.SalvageValue.IsNegative() || req.PurchasePrice.IsNegative() {
		return nil, apperrors.NewValidationError("asset.amounts", "purchase price and salvage value must not be negative")
	}

	reference, err := s.numbering.NextDocumentNumber(ctx, organizationID, domain.DocumentAsset)
	if err != nil {
		s.LogError(ctx, err, "failed to take asset number", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to take asset number: %w", err)
	}

	asset := domain.FixedAsset{
		AssetID:            uuid.NewString(),
		OrganizationID:     organizationID,
		Name:               req.Name,
		Reference:          reference,
		PurchaseDate:       req.PurchaseDate,
		PurchasePrice:      req.PurchasePrice,
		SalvageValue:       req.SalvageValue,
		UsefulLifeMonths:   req.UsefulLifeMonths,
		DepreciationMethod: domain.StraightLine,
		AuditFields:        domain.NewAuditFields(actorID, time.Now().UTC()),
	}
	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		s.LogError(ctx, err, "failed to save asset", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}

	s.LogInfo(ctx, "asset registered",
		slog.String("asset_id", asset.AssetID),
		slog.String("reference", reference))
	return &asset, nil
}

// GetAsset retrieves a fixed asset.
func (s *assetService) GetAsset(ctx context.Context, organizationID, assetID string, actorID string) (*domain.FixedAsset, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	asset, err := s.assetRepo.FindAssetByID(ctx, organizationID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find asset %s: %w", assetID, err)
	}
	return asset, nil
}

// ListAssets retrieves fixed assets of an organization.
func (s *assetService) ListAssets(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.FixedAsset, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	assets, err := s.assetRepo.ListAssets(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

// DepreciationSchedule returns the straight-line schedule of an asset with
// posted periods marked.
func (s *assetService) DepreciationSchedule(ctx context.Context, organizationID, assetID string, actorID string) ([]domain.DepreciationPeriod, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	asset, err := s.assetRepo.FindAssetByID(ctx, organizationID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find asset %s: %w", assetID, err)
	}

	schedule, err := accounting.StraightLineSchedule(*asset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	postings, err := s.assetRepo.FindDepreciationPostings(ctx, organizationID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load depreciation postings: %w", err)
	}
	for i := range schedule {
		if entryID, ok := postings[schedule[i].Sequence]; ok {
			schedule[i].Posted = true
			id := entryID
			schedule[i].EntryID = &id
		}
	}
	return schedule, nil
}

// PostDepreciation creates and posts the journal entry for one schedule period
// (debit depreciation expense, credit accumulated depreciation). Posting the
// same period twice fails with a duplicate error.
func (s *assetService) PostDepreciation(ctx context.Context, organizationID, assetID string, req dto.PostDepreciationRequest, actorID string) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}

	asset, err := s.assetRepo.FindAssetByID(ctx, organizationID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find asset %s: %w", assetID, err)
	}

	schedule, err := accounting.StraightLineSchedule(*asset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.Sequence < 1 || req.Sequence > len(schedule) {
		return nil, apperrors.NewValidationError("depreciation.sequence",
			fmt.Sprintf("sequence %d outside schedule of %d periods", req.Sequence, len(schedule)))
	}
	period := schedule[req.Sequence-1]
	if period.Amount.IsZero() {
		return nil, apperrors.NewValidationError("depreciation.amount",
			fmt.Sprintf("period %d has zero depreciation", req.Sequence))
	}

	postings, err := s.assetRepo.FindDepreciationPostings(ctx, organizationID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load depreciation postings: %w", err)
	}
	if _, already := postings[req.Sequence]; already {
		return nil, fmt.Errorf("%w: depreciation period %d of asset %s is already posted", apperrors.ErrDuplicate, req.Sequence, asset.Reference)
	}

	entry, err := s.journalSvc.CreateJournalEntry(ctx, organizationID, dto.CreateJournalEntryRequest{
		EntryDate:   period.Date,
		Reference:   asset.Reference,
		Description: fmt.Sprintf("Depreciation %d/%d for asset %s", req.Sequence, len(schedule), asset.Name),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: req.ExpenseAccountID, Amount: period.Amount, DC: domain.DebitLine},
			{AccountID: req.AccumulatedDepAccountID, Amount: period.Amount, DC: domain.CreditLine},
		},
	}, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create depreciation entry: %w", err)
	}

	// The posting record rides in the posting transaction, and its unique
	// (asset, sequence) key closes the race two concurrent posters would
	// otherwise win together: the loser's whole posting rolls back.
	companion := s.assetRepo.DepreciationInsertOnPost(organizationID, assetID, req.Sequence, entry.EntryID)
	posted, err := s.journalSvc.PostJournalEntry(ctx, organizationID, entry.EntryID, actorID, companion)
	if err != nil {
		s.LogError(ctx, err, "failed to post depreciation entry",
			slog.String("asset_id", assetID),
			slog.Int("sequence", req.Sequence))
		return nil, fmt.Errorf("failed to post depreciation entry: %w", err)
	}

	s.LogInfo(ctx, "depreciation posted",
		slog.String("asset_id", assetID),
		slog.Int("sequence", req.Sequence),
		slog.String("amount", period.Amount.String()))
	return posted, nil
}
