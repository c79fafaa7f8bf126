package domain

import "time"

// AuditLog is an append-only record of a domain mutation. Services write one
// after a successful commit; failures to record are logged and never fail the
// originating operation.
type AuditLog struct {
	AuditLogID     string    `json:"auditLogID"` // Primary Key (UUID)
	OrganizationID string    `json:"organizationID"`
	ActorID        string    `json:"actorID"`
	Action         string    `json:"action"` // e.g. "journal.post"
	EntityType     string    `json:"entityType"`
	EntityID       string    `json:"entityID"`
	Detail         string    `json:"detail"` // Optional human-readable context
	OccurredAt     time.Time `json:"occurredAt"`
}
