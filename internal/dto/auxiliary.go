package dto

import "github.com/shopspring/decimal"

// CreateCostCenterRequest defines the data needed to create a cost center.
type CreateCostCenterRequest struct {
	Code        string `json:"code" validate:"required,max=32"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=512"`
}

// UpdateCostCenterRequest defines the updatable fields of a cost center.
type UpdateCostCenterRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=512"`
}

// CreateTaxRateRequest defines the data needed to create a tax rate.
type CreateTaxRateRequest struct {
	Name       string          `json:"name" validate:"required,max=255"`
	Percentage decimal.Decimal `json:"percentage" validate:"required"`
}
