package domain

import "github.com/shopspring/decimal"

// TaxRate is a named percentage applied to invoice lines.
// (organization, name) is unique.
type TaxRate struct {
	TaxRateID      string          `json:"taxRateID"` // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	Percentage     decimal.Decimal `json:"percentage"` // e.g. 9.00 for 9%
	AuditFields
}

// Apply returns the tax amount for the given base, rounded to two places.
func (t TaxRate) Apply(base decimal.Decimal) decimal.Decimal {
	return base.Mul(t.Percentage).Div(decimal.NewFromInt(100)).Round(2)
}
