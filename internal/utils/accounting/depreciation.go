package accounting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeepd/bookkeepd/internal/core/domain"
)

// monthEnd returns the last day of the month lying offset months after t,
// keeping t's location. Day zero of the following month is that last day, so
// short months never spill over.
func monthEnd(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(offset)+1, 0, 0, 0, 0, 0, t.Location())
}

// StraightLineSchedule spreads an asset's depreciable base evenly over its
// useful life in months, at two decimal places. The final period absorbs the
// rounding remainder so the schedule sums exactly to the base. Period i is
// dated the last day of the i-th month after the purchase month.
func StraightLineSchedule(asset domain.FixedAsset) ([]domain.DepreciationPeriod, error) {
	if asset.UsefulLifeMonths <= 0 {
		return nil, fmt.Errorf("asset %s has no useful life", asset.AssetID)
	}
	base := asset.DepreciableBase()
	if base.IsNegative() {
		return nil, fmt.Errorf("asset %s salvage value exceeds purchase price", asset.AssetID)
	}

	months := int64(asset.UsefulLifeMonths)
	monthly := base.Div(decimal.NewFromInt(months)).Round(2)

	periods := make([]domain.DepreciationPeriod, asset.UsefulLifeMonths)
	accumulated := decimal.Zero
	for i := 0; i < asset.UsefulLifeMonths; i++ {
		amount := monthly
		if i == asset.UsefulLifeMonths-1 {
			amount = base.Sub(accumulated) // remainder lands here
		}
		accumulated = accumulated.Add(amount)
		periods[i] = domain.DepreciationPeriod{
			Sequence: i + 1,
			Date:     monthEnd(asset.PurchaseDate, i+1),
			Amount:   amount,
		}
	}
	return periods, nil
}
