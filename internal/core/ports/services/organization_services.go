package services

import (
	"context"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	"github.com/bookkeepd/bookkeepd/internal/dto"
)

// OrganizationSvcFacade manages tenants and their memberships.
type OrganizationSvcFacade interface {
	OrganizationAuthorizer

	// CreateOrganization creates a new tenant and makes the creator its admin.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)

	// GetOrganization retrieves an organization by ID.
	GetOrganization(ctx context.Context, organizationID string) (*domain.Organization, error)

	// UpdateOrganization updates an organization's details and settings.
	UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, actorID string) (*domain.Organization, error)

	// DeleteOrganization removes a tenant and everything it owns.
	DeleteOrganization(ctx context.Context, organizationID string, actorID string) error

	// AddMember adds a user to an organization with the given role.
	AddMember(ctx context.Context, organizationID string, req dto.AddMemberRequest, actorID string) (*domain.OrganizationMember, error)

	// ListMembers retrieves the memberships of an organization.
	ListMembers(ctx context.Context, organizationID string, actorID string) ([]domain.OrganizationMember, error)
}
