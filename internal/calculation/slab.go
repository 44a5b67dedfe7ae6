package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taxgo/itr-calculator/internal/domain"
)

// SlabCalculator applies a progressive marginal-rate table to a slab-taxable
// income amount. Slabs must be ordered ascending by upper bound with the
// final slab unbounded; that is a caller contract, not a runtime check.
type SlabCalculator struct {
	Slabs []domain.TaxSlab
}

// NewSlabCalculator creates a slab calculator over the given rate table.
func NewSlabCalculator(slabs []domain.TaxSlab) *SlabCalculator {
	return &SlabCalculator{Slabs: slabs}
}

// Calculate walks the slab table from the bottom and returns the total tax
// together with an ascending per-slab breakdown. The walk stops as soon as
// the full amount has been absorbed.
func (sc *SlabCalculator) Calculate(amount decimal.Decimal) (decimal.Decimal, []domain.SlabBreakdownEntry) {
	tax := decimal.Zero
	breakdown := make([]domain.SlabBreakdownEntry, 0, len(sc.Slabs))

	remaining := amount
	floor := decimal.Zero
	for _, slab := range sc.Slabs {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		var width, inSlab decimal.Decimal
		if slab.Unbounded() {
			inSlab = remaining
		} else {
			width = slab.UpperBound.Sub(floor)
			if width.LessThanOrEqual(decimal.Zero) {
				// Collapsed band (e.g. the 5% band under the
				// super-senior exemption); contributes nothing.
				floor = slab.UpperBound
				continue
			}
			inSlab = decimal.Min(remaining, width)
		}

		slabTax := inSlab.Mul(slab.Rate)
		tax = tax.Add(slabTax)
		breakdown = append(breakdown, domain.SlabBreakdownEntry{
			RangeLabel:    rangeLabel(floor, slab),
			TaxableAmount: inSlab,
			RatePercent:   slab.Rate.Mul(decimal.NewFromInt(100)),
			Tax:           slabTax,
		})

		remaining = remaining.Sub(inSlab)
		floor = slab.UpperBound
	}

	return tax, breakdown
}

func rangeLabel(floor decimal.Decimal, slab domain.TaxSlab) string {
	if slab.Unbounded() {
		return fmt.Sprintf("Above %s", floor.StringFixed(0))
	}
	return fmt.Sprintf("%s - %s", floor.StringFixed(0), slab.UpperBound.StringFixed(0))
}
