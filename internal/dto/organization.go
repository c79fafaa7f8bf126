package dto

import (
	"time"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// CreateOrganizationRequest defines the data needed to create a new organization.
type CreateOrganizationRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	TaxID        string `json:"taxID" validate:"max=100"`
	Timezone     string `json:"timezone"`                                  // Defaults to UTC
	BaseCurrency string `json:"baseCurrency" validate:"required,len=3,uppercase"` // ISO-4217
}

// UpdateOrganizationRequest defines the fields an organization may change.
type UpdateOrganizationRequest struct {
	Name             *string    `json:"name"`
	TaxID            *string    `json:"taxID"`
	Timezone         *string    `json:"timezone"`
	FiscalYearStart  *time.Time `json:"fiscalYearStart"`
	AutoPostJournals *bool      `json:"autoPostJournals"`
}

// AddMemberRequest defines the data needed to add a user to an organization.
type AddMemberRequest struct {
	UserID string                  `json:"userID" validate:"required"`
	Role   domain.OrganizationRole `json:"role" validate:"required,oneof=admin accountant auditor viewer"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	TaxID          string    `json:"taxID,omitempty"`
	Timezone       string    `json:"timezone"`
	BaseCurrency   string    `json:"baseCurrency"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToOrganizationResponse converts a domain.Organization to its response DTO.
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: org.OrganizationID,
		Name:           org.Name,
		TaxID:          org.TaxID,
		Timezone:       org.Timezone,
		BaseCurrency:   org.BaseCurrency,
		CreatedAt:      org.CreatedAt,
	}
}
