package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// taxRateService manages tax rate master data.
type taxRateService struct {
	BaseService
	taxRepo portsrepo.TaxRateRepository
}

// NewTaxRateService creates a new TaxRateService.
func NewTaxRateService(taxRepo portsrepo.TaxRateRepository, authorizer portssvc.OrganizationAuthorizer) portssvc.TaxRateSvc {
	return &taxRateService{
		BaseService: BaseService{Authorizer: authorizer},
		taxRepo:     taxRepo,
	}
}

var _ portssvc.TaxRateSvc = (*taxRateService)(nil)

// CreateTaxRate creates a new tax rate.
func (s *taxRateService) CreateTaxRate(ctx context.Context, organizationID string, req dto.CreateTaxRateRequest, actorID string) (*domain.TaxRate, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}
	if req.Percentage.IsNegative() || req.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperrors.NewValidationError("tax.percentage", "percentage must be between 0 and 100")
	}

	rate := domain.TaxRate{
		TaxRateID:      uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Percentage:     req.Percentage,
		AuditFields:    domain.NewAuditFields(actorID, time.Now().UTC()),
	}
	if err := s.taxRepo.SaveTaxRate(ctx, rate); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: tax rate name %s already in use", apperrors.ErrDuplicate, req.Name)
		}
		s.LogError(ctx, err, "failed to save tax rate", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save tax rate: %w", err)
	}

	s.LogInfo(ctx, "tax rate created", slog.String("tax_rate_id", rate.TaxRateID), slog.String("name", rate.Name))
	return &rate, nil
}

// GetTaxRate retrieves a tax rate.
func (s *taxRateService) GetTaxRate(ctx context.Context, organizationID, taxRateID string, actorID string) (*domain.TaxRate, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	rate, err := s.taxRepo.FindTaxRateByID(ctx, organizationID, taxRateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tax rate %s: %w", taxRateID, err)
	}
	return rate, nil
}

// ListTaxRates retrieves tax rates of an organization.
func (s *taxRateService) ListTaxRates(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.TaxRate, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	rates, err := s.taxRepo.ListTaxRates(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax rates: %w", err)
	}
	// Repository returns the full set; tax rate catalogs are small.
	if limit > 0 && offset >= 0 && offset < len(rates) {
		end := offset + limit
		if end > len(rates) {
			end = len(rates)
		}
		rates = rates[offset:end]
	}
	return rates, nil
}
