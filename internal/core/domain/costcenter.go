package domain

// CostCenter tags journal lines with an organizational spending unit.
// (organization, code) is unique.
type CostCenter struct {
	CostCenterID   string `json:"costCenterID"` // Primary Key (UUID)
	OrganizationID string `json:"organizationID"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	AuditFields
}
