package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepreciationMethod enumerates supported depreciation calculations.
type DepreciationMethod string

const (
	StraightLine DepreciationMethod = "straight_line"
)

// FixedAsset is a depreciable asset of an organization.
type FixedAsset struct {
	AssetID            string             `json:"assetID"` // Primary Key (UUID)
	OrganizationID     string             `json:"organizationID"`
	Name               string             `json:"name"`
	Reference          string             `json:"reference"` // Document number, assigned when blank
	PurchaseDate       time.Time          `json:"purchaseDate"`
	PurchasePrice      decimal.Decimal    `json:"purchasePrice"`
	SalvageValue       decimal.Decimal    `json:"salvageValue"`
	UsefulLifeMonths   int                `json:"usefulLifeMonths"`
	DepreciationMethod DepreciationMethod `json:"depreciationMethod"`
	AuditFields
}

// DepreciableBase is the total amount to be written off over the asset's life.
func (a FixedAsset) DepreciableBase() decimal.Decimal {
	return a.PurchasePrice.Sub(a.SalvageValue)
}

// DepreciationPeriod is one month of an asset's depreciation schedule.
// Posted indicates the period has been written to the journal.
type DepreciationPeriod struct {
	Sequence int             `json:"sequence"` // 1-based month index
	Date     time.Time       `json:"date"`     // Last day covered by the period
	Amount   decimal.Decimal `json:"amount"`
	Posted   bool            `json:"posted"`
	EntryID  *string         `json:"entryID"` // Journal entry that posted this period
}
