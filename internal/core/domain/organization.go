package domain

import "time"

// Organization is the tenant boundary. Every other domain entity belongs to
// exactly one organization; cross-organization references are forbidden.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (UUID)
	Name           string `json:"name"`
	TaxID          string `json:"taxID"`        // Optional government tax identifier
	Timezone       string `json:"timezone"`     // IANA name, default "UTC"
	BaseCurrency   string `json:"baseCurrency"` // ISO-4217 uppercase, e.g. "USD"
	Settings       OrganizationSettings
	AuditFields
}

// OrganizationSettings holds per-tenant accounting preferences.
type OrganizationSettings struct {
	FiscalYearStart  *time.Time `json:"fiscalYearStart"`
	DecimalPlaces    int32      `json:"decimalPlaces"`    // stored money scale, default 2
	AutoPostJournals bool       `json:"autoPostJournals"` // post entries immediately on creation
}

// OrganizationRole defines the possible roles a user can have within an organization.
type OrganizationRole string

const (
	RoleAdmin      OrganizationRole = "admin"
	RoleAccountant OrganizationRole = "accountant"
	RoleAuditor    OrganizationRole = "auditor"
	RoleViewer     OrganizationRole = "viewer"
)

// OrganizationMember represents the membership of a user in an organization.
// (organization, user) is unique.
type OrganizationMember struct {
	MemberID       string           `json:"memberID"`
	OrganizationID string           `json:"organizationID"`
	UserID         string           `json:"userID"`
	Role           OrganizationRole `json:"role"`
	IsActive       bool             `json:"isActive"`
	JoinedAt       time.Time        `json:"joinedAt"`
}

// DocumentType enumerates document kinds that take sequential numbers.
type DocumentType string

const (
	DocumentJournal DocumentType = "journal"
	DocumentInvoice DocumentType = "invoice"
	DocumentPayment DocumentType = "payment"
	DocumentAsset   DocumentType = "asset"
)

// DocumentNumbering holds the per-organization numbering rule for one document type.
// NextNumber advances atomically; see NumberingRepository.
type DocumentNumbering struct {
	NumberingID    string       `json:"numberingID"`
	OrganizationID string       `json:"organizationID"`
	DocumentType   DocumentType `json:"documentType"`
	Prefix         string       `json:"prefix"`
	Suffix         string       `json:"suffix"`
	NextNumber     int64        `json:"nextNumber"`
	AuditFields
}
