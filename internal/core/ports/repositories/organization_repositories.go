package repositories

import (
	"context"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its unique identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizations retrieves a paginated list of organizations.
	ListOrganizations(ctx context.Context, limit int, offset int) ([]domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization.
	SaveOrganization(ctx context.Context, org domain.Organization) error

	// UpdateOrganization updates an existing organization's details and settings.
	UpdateOrganization(ctx context.Context, org domain.Organization) error

	// DeleteOrganization removes an organization and, by cascade, everything it owns.
	DeleteOrganization(ctx context.Context, organizationID string) error
}

// MembershipRepository defines operations on organization memberships
type MembershipRepository interface {
	// SaveMember persists a new membership. (organization, user) is unique.
	SaveMember(ctx context.Context, member domain.OrganizationMember) error

	// FindMember retrieves the membership of a user in an organization.
	FindMember(ctx context.Context, organizationID, userID string) (*domain.OrganizationMember, error)

	// ListMembers retrieves all memberships of an organization.
	ListMembers(ctx context.Context, organizationID string) ([]domain.OrganizationMember, error)

	// UpdateMember updates a membership's role or active flag.
	UpdateMember(ctx context.Context, member domain.OrganizationMember) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
	MembershipRepository
}
