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

// roleRank orders the membership roles for minimum-role checks.
var roleRank = map[domain.OrganizationRole]int{
	domain.RoleViewer:     1,
	domain.RoleAuditor:    2,
	domain.RoleAccountant: 3,
	domain.RoleAdmin:      4,
}

// organizationService manages tenants and their memberships.
type organizationService struct {
	BaseService
	orgRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{orgRepo: orgRepo}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// AuthorizeAction checks that the user holds at least minRole in the
// organization. Missing or inactive memberships come back as ErrNotFound so
// the caller cannot distinguish "no such org" from "not a member".
func (s *organizationService) AuthorizeAction(ctx context.Context, userID, organizationID string, minRole domain.OrganizationRole) error {
	member, err := s.orgRepo.FindMember(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s has no membership in organization %s", apperrors.ErrNotFound, userID, organizationID)
		}
		s.LogError(ctx, err, "failed to load membership for authorization",
			slog.String("user_id", userID), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !member.IsActive {
		return fmt.Errorf("%w: user %s has no membership in organization %s", apperrors.ErrNotFound, userID, organizationID)
	}
	if roleRank[member.Role] < roleRank[minRole] {
		return fmt.Errorf("%w: role %s does not satisfy required role %s", apperrors.ErrForbidden, member.Role, minRole)
	}
	return nil
}

// CreateOrganization creates a new tenant and makes the creator its admin.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.Name,
		TaxID:          req.TaxID,
		Timezone:       req.Timezone,
		BaseCurrency:   req.BaseCurrency,
		Settings: domain.OrganizationSettings{
			DecimalPlaces: 2,
		},
		AuditFields: domain.NewAuditFields(creatorUserID, now),
	}
	if org.Timezone == "" {
		org.Timezone = "UTC"
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "failed to save organization", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save organization: %w", err)
	}

	member := domain.OrganizationMember{
		MemberID:       uuid.NewString(),
		OrganizationID: org.OrganizationID,
		UserID:         creatorUserID,
		Role:           domain.RoleAdmin,
		IsActive:       true,
		JoinedAt:       now,
	}
	if err := s.orgRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "failed to save creator membership", slog.String("organization_id", org.OrganizationID))
		return nil, fmt.Errorf("failed to save creator membership: %w", err)
	}

	s.LogInfo(ctx, "organization created", slog.String("organization_id", org.OrganizationID))
	return &org, nil
}

// GetOrganization retrieves an organization by ID.
func (s *organizationService) GetOrganization(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find organization", slog.String("organization_id", organizationID))
		}
		return nil, fmt.Errorf("failed to find organization %s: %w", organizationID, err)
	}
	return org, nil
}

// UpdateOrganization updates an organization's details and settings.
func (s *organizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, actorID string) (*domain.Organization, error) {
	if err := s.AuthorizeAction(ctx, actorID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find organization %s: %w", organizationID, err)
	}

	updated := false
	if req.Name != nil {
		org.Name = *req.Name
		updated = true
	}
	if req.TaxID != nil {
		org.TaxID = *req.TaxID
		updated = true
	}
	if req.Timezone != nil {
		org.Timezone = *req.Timezone
		updated = true
	}
	if req.FiscalYearStart != nil {
		org.Settings.FiscalYearStart = req.FiscalYearStart
		updated = true
	}
	if req.AutoPostJournals != nil {
		org.Settings.AutoPostJournals = *req.AutoPostJournals
		updated = true
	}
	if !updated {
		return org, nil
	}

	org.Touch(actorID, time.Now().UTC())
	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		s.LogError(ctx, err, "failed to update organization", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	s.LogInfo(ctx, "organization updated", slog.String("organization_id", organizationID))
	return org, nil
}

// DeleteOrganization removes a tenant and everything it owns.
func (s *organizationService) DeleteOrganization(ctx context.Context, organizationID string, actorID string) error {
	if err := s.AuthorizeAction(ctx, actorID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.orgRepo.DeleteOrganization(ctx, organizationID); err != nil {
		s.LogError(ctx, err, "failed to delete organization", slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	s.LogInfo(ctx, "organization deleted", slog.String("organization_id", organizationID))
	return nil
}

// AddMember adds a user to an organization with the given role.
func (s *organizationService) AddMember(ctx context.Context, organizationID string, req dto.AddMemberRequest, actorID string) (*domain.OrganizationMember, error) {
	if err := s.AuthorizeAction(ctx, actorID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.ValidateStruct(ctx, req); err != nil {
		return nil, err
	}

	member := domain.OrganizationMember{
		MemberID:       uuid.NewString(),
		OrganizationID: organizationID,
		UserID:         req.UserID,
		Role:           req.Role,
		IsActive:       true,
		JoinedAt:       time.Now().UTC(),
	}
	if err := s.orgRepo.SaveMember(ctx, member); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user %s is already a member", apperrors.ErrDuplicate, req.UserID)
		}
		s.LogError(ctx, err, "failed to save membership", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save membership: %w", err)
	}

	s.LogInfo(ctx, "member added",
		slog.String("organization_id", organizationID),
		slog.String("user_id", req.UserID),
		slog.String("role", string(req.Role)))
	return &member, nil
}

// ListMembers retrieves the memberships of an organization.
func (s *organizationService) ListMembers(ctx context.Context, organizationID string, actorID string) ([]domain.OrganizationMember, error) {
	if err := s.AuthorizeAction(ctx, actorID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	members, err := s.orgRepo.ListMembers(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "failed to list members", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}
