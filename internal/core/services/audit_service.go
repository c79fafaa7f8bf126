package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
	portsrepo "github.com/bookkeepd/bookkeepd/internal/core/ports/repositories"
	portssvc "github.com/bookkeepd/bookkeepd/internal/core/ports/services"
)

// auditService writes and queries the append-only audit trail.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepository, authorizer portssvc.OrganizationAuthorizer) portssvc.AuditSvc {
	return &auditService{
		BaseService: BaseService{Authorizer: authorizer},
		auditRepo:   auditRepo,
	}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

// RecordAction appends one audit row. No authorization check: callers record
// their own already-authorized mutations.
func (s *auditService) RecordAction(ctx context.Context, organizationID, actorID, action, entityType, entityID, detail string, at time.Time) error {
	entry := domain.AuditLog{
		AuditLogID:     uuid.NewString(),
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         action,
		EntityType:     entityType,
		EntityID:       entityID,
		Detail:         detail,
		OccurredAt:     at,
	}
	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}
	return nil
}

// EntityHistory retrieves the audit trail of one entity, oldest first.
func (s *auditService) EntityHistory(ctx context.Context, organizationID, entityType, entityID string, actorID string) ([]domain.AuditLog, error) {
	if err := s.Authorize(ctx, actorID, organizationID, domain.RoleAuditor); err != nil {
		return nil, err
	}
	logs, err := s.auditRepo.ListAuditLogsByEntity(ctx, organizationID, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
