package services

import (
	"context"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// OrganizationAuthorizer checks that a user may act within an organization.
// minRole is the weakest role allowed to perform the action; stronger roles
// (admin > accountant > auditor > viewer) pass automatically.
type OrganizationAuthorizer interface {
	AuthorizeAction(ctx context.Context, userID, organizationID string, minRole domain.OrganizationRole) error
}
