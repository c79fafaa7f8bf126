package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeepd/bookkeepd/internal/apperrors"
	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// costCenterService manages cost center master data.
type costCenterService struct {
	BaseService
	ccRepo portsrepo.CostCenterRepository
}

// NewCostCenterService creates a new CostCenterService.
func NewCostCenterService(ccRepo portsrepo.CostCenterRepository, authorizer portssvc.OrganizationAuthorizer) portssvc.CostCenterSvc {
	return &costCenterService{
		BaseService: BaseService{Authorizer: authorizer},
		ccRepo:      ccRepo,
	}
}

var _ portssvc.CostCenterSvc = (*costCenterService)(nil)

// CreateCostCenter creates a new cost center.
func (s *costCenterService) CreateCostCenter(ctx context.Context, organizationID string, req dto.CreateCostCenterRequest, actorID string) (*domain.CostCenter, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}

	cc := domain.CostCenter{
		CostCenterID:   uuid.NewString(),
		OrganizationID: organizationID,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		AuditFields:    domain.NewAuditFields(actorID, time.Now().UTC()),
	}
	if err := s.ccRepo.SaveCostCenter(ctx, cc); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: cost center code %s already in use", apperrors.ErrDuplicate, req.Code)
		}
		s.LogError(ctx, err, "failed to save cost center", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save cost center: %w", err)
	}

	s.LogInfo(ctx, "cost center created", slog.String("cost_center_id", cc.CostCenterID), slog.String("code", cc.Code))
	return &cc, nil
}

// GetCostCenter retrieves a cost center.
func (s *costCenterService) GetCostCenter(ctx context.Context, organizationID, costCenterID string, actorID string) (*domain.CostCenter, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	cc, err := s.ccRepo.FindCostCenterByID(ctx, organizationID, costCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cost center %s: %w", costCenterID, err)
	}
	return cc, nil
}

// ListCostCenters retrieves cost centers of an organization.
func (s *costCenterService) ListCostCenters(ctx context.Context, organizationID string, limit, offset int, actorID string) ([]domain.CostCenter, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	centers, err := s.ccRepo.ListCostCenters(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost centers: %w", err)
	}
	return centers, nil
}

// UpdateCostCenter updates a cost center's mutable details.
func (s *costCenterService) UpdateCostCenter(ctx context.Context, organizationID, costCenterID string, req dto.UpdateCostCenterRequest, actorID string) (*domain.CostCenter, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	cc, err := s.ccRepo.FindCostCenterByID(ctx, organizationID, costCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cost center %s: %w", costCenterID, err)
	}

	updated := false
	if req.Name != nil {
		cc.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		cc.Description = *req.Description
		updated = true
	}
	if !updated {
		return cc, nil
	}

	cc.Touch(actorID, time.Now().UTC())
	if err := s.ccRepo.UpdateCostCenter(ctx, *cc); err != nil {
		s.LogError(ctx, err, "failed to update cost center", slog.String("cost_center_id", costCenterID))
		return nil, fmt.Errorf("failed to update cost center: %w", err)
	}
	return cc, nil
}
