package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxgo/itr-calculator/internal/domain"
)

// TestSlabCalculation tests marginal slab tax over the default tables
func TestSlabCalculation(t *testing.T) {
	rules := domain.DefaultRuleSetAY2526()

	tests := []struct {
		name        string
		slabs       []domain.TaxSlab
		amount      decimal.Decimal
		expectedTax decimal.Decimal
		description string
	}{
		{
			name:        "Zero income",
			slabs:       rules.NewSlabs,
			amount:      decimal.Zero,
			expectedTax: decimal.Zero,
			description: "No income, no tax",
		},
		{
			name:        "Within basic exemption",
			slabs:       rules.NewSlabs,
			amount:      decimal.NewFromInt(250000),
			expectedTax: decimal.Zero,
			description: "Entirely inside the 0% band",
		},
		{
			name:        "New regime spanning four bands",
			slabs:       rules.NewSlabs,
			amount:      decimal.NewFromInt(1150000),
			expectedTax: decimal.NewFromInt(82500), // 15000 + 30000 + 37500
			description: "3-6L at 5%, 6-9L at 10%, 9-11.5L at 15%",
		},
		{
			name:        "Old regime spanning all bands",
			slabs:       rules.OldSlabs,
			amount:      decimal.NewFromInt(1150000),
			expectedTax: decimal.NewFromInt(157500), // 12500 + 100000 + 45000
			description: "2.5-5L at 5%, 5-10L at 20%, above at 30%",
		},
		{
			name:        "Old regime top slab only partially used",
			slabs:       rules.OldSlabs,
			amount:      decimal.NewFromInt(1000000),
			expectedTax: decimal.NewFromInt(112500),
			description: "Exactly at the 30% band boundary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewSlabCalculator(tt.slabs)
			tax, breakdown := calc.Calculate(tt.amount)

			assert.True(t, tax.Equal(tt.expectedTax),
				"%s: expected %s, got %s", tt.description,
				tt.expectedTax.StringFixed(2), tax.StringFixed(2))

			// The breakdown always reconstructs the taxed amount.
			sum := decimal.Zero
			for _, e := range breakdown {
				sum = sum.Add(e.TaxableAmount)
			}
			assert.True(t, sum.Equal(tt.amount),
				"breakdown sum %s != amount %s", sum.StringFixed(2), tt.amount.StringFixed(2))
		})
	}
}

// TestSlabTaxMonotonic verifies that slab tax is non-decreasing in income.
func TestSlabTaxMonotonic(t *testing.T) {
	rules := domain.DefaultRuleSetAY2526()

	for _, slabs := range [][]domain.TaxSlab{rules.OldSlabs, rules.NewSlabs, rules.OldSlabsSenior} {
		calc := NewSlabCalculator(slabs)
		prev := decimal.Zero
		for income := int64(0); income <= 3000000; income += 50000 {
			tax, _ := calc.Calculate(decimal.NewFromInt(income))
			assert.True(t, tax.GreaterThanOrEqual(prev),
				"tax decreased at income %d: %s < %s", income, tax.StringFixed(2), prev.StringFixed(2))
			prev = tax
		}
	}
}

// TestSlabBreakdownOrderAndEarlyStop checks ascending breakdown order and
// that the walk stops once the amount is absorbed.
func TestSlabBreakdownOrderAndEarlyStop(t *testing.T) {
	rules := domain.DefaultRuleSetAY2526()
	calc := NewSlabCalculator(rules.NewSlabs)

	_, breakdown := calc.Calculate(decimal.NewFromInt(200000))
	require.Len(t, breakdown, 1, "income inside the first band should produce one entry")
	assert.True(t, breakdown[0].Tax.IsZero())

	_, breakdown = calc.Calculate(decimal.NewFromInt(1150000))
	require.Len(t, breakdown, 4)
	for i, rate := range []int64{0, 5, 10, 15} {
		assert.True(t, breakdown[i].RatePercent.Equal(decimal.NewFromInt(rate)),
			"entry %d rate: %s", i, breakdown[i].RatePercent.String())
	}
}

// TestSuperSeniorCollapsedBand: the super-senior table's 5% band has zero
// width (exemption meets the band ceiling) and must contribute nothing.
func TestSuperSeniorCollapsedBand(t *testing.T) {
	rules := domain.DefaultRuleSetAY2526()
	calc := NewSlabCalculator(rules.OldSlabsSuperSenior)

	tax, breakdown := calc.Calculate(decimal.NewFromInt(700000))
	assert.True(t, tax.Equal(decimal.NewFromInt(40000)), "got %s", tax.StringFixed(2))
	require.Len(t, breakdown, 2)
	assert.True(t, breakdown[1].RatePercent.Equal(decimal.NewFromInt(20)))
}
