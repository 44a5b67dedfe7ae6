package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/taxgo/itr-calculator/internal/domain"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func newCGCalc() *CapitalGainsCalculator {
	return NewCapitalGainsCalculator(domain.DefaultRuleSetAY2526().CapitalGains)
}

func TestCapitalGainsEmptyAndLossTransactions(t *testing.T) {
	calc := newCGCalc()

	res := calc.Calculate(nil)
	assert.True(t, res.TotalTax.IsZero(), "no transactions, no tax")

	res = calc.Calculate([]domain.CapitalGainsTransaction{
		{
			ID:            "loss",
			AssetType:     domain.ListedEquity,
			PurchaseDate:  date("2024-01-01"),
			SaleDate:      date("2024-06-01"),
			PurchasePrice: decimal.NewFromInt(100000),
			SalePrice:     decimal.NewFromInt(90000),
		},
		{
			ID:            "break-even after expenses",
			AssetType:     domain.ListedEquity,
			PurchaseDate:  date("2024-01-01"),
			SaleDate:      date("2024-06-01"),
			PurchasePrice: decimal.NewFromInt(100000),
			SalePrice:     decimal.NewFromInt(100500),
			Expenses:      decimal.NewFromInt(500),
		},
	})
	assert.True(t, res.TotalTax.IsZero(), "losses and break-evens contribute nothing")
	assert.True(t, res.EquitySTCG.IsZero())
}

func TestCapitalGainsMissingDatesSkipped(t *testing.T) {
	calc := newCGCalc()

	res := calc.Calculate([]domain.CapitalGainsTransaction{
		{
			ID:            "no purchase date",
			AssetType:     domain.ListedEquity,
			SaleDate:      date("2024-06-01"),
			PurchasePrice: decimal.NewFromInt(1000),
			SalePrice:     decimal.NewFromInt(50000),
		},
		{
			ID:            "no sale date",
			AssetType:     domain.Property,
			PurchaseDate:  date("2015-06-01"),
			PurchasePrice: decimal.NewFromInt(1000),
			SalePrice:     decimal.NewFromInt(50000),
		},
	})
	assert.True(t, res.TotalTax.IsZero())
}

// TestGrandfatheredCostBasis: assets bought before 31 Jan 2018 step up their
// cost basis to the 2018 FMV when that is higher than the purchase price.
func TestGrandfatheredCostBasis(t *testing.T) {
	calc := newCGCalc()
	fmv := decimal.NewFromInt(500)

	res := calc.Calculate([]domain.CapitalGainsTransaction{
		{
			ID:            "grandfathered",
			AssetType:     domain.ListedEquity,
			PurchaseDate:  date("2010-01-01"),
			SaleDate:      date("2020-01-01"),
			PurchasePrice: decimal.NewFromInt(100),
			SalePrice:     decimal.NewFromInt(600),
			FMV2018:       &fmv,
		},
	})

	assert.True(t, res.EquityLTCG.Equal(decimal.NewFromInt(100)),
		"gain should be computed off the stepped-up basis, got %s", res.EquityLTCG.String())
	// 100 is below the aggregate LTCG exemption, so no tax results.
	assert.True(t, res.TotalTax.IsZero())
}

// TestGrandfatheringNotAppliedAfterCutoff: FMV is ignored for purchases on
// or after the cutoff, and a lower FMV never reduces the basis.
func TestGrandfatheringNotAppliedAfterCutoff(t *testing.T) {
	calc := newCGCalc()
	highFMV := decimal.NewFromInt(500000)
	lowFMV := decimal.NewFromInt(10)

	res := calc.Calculate([]domain.CapitalGainsTransaction{
		{
			ID:            "bought after cutoff",
			AssetType:     domain.ListedEquity,
			PurchaseDate:  date("2019-01-01"),
			SaleDate:      date("2024-01-01"),
			PurchasePrice: decimal.NewFromInt(100000),
			SalePrice:     decimal.NewFromInt(150000),
			FMV2018:       &highFMV,
		},
		{
			ID:            "FMV below purchase price",
			AssetType:     domain.ListedEquity,
			PurchaseDate:  date("2016-01-01"),
			SaleDate:      date("2024-01-01"),
			PurchasePrice: decimal.NewFromInt(100000),
			SalePrice:     decimal.NewFromInt(150000),
			FMV2018:       &lowFMV,
		},
	})

	assert.True(t, res.EquityLTCG.Equal(decimal.NewFromInt(100000)),
		"both gains should be 50000 off the purchase price, got %s", res.EquityLTCG.String())
}

func TestEquityHoldingPeriodClassification(t *testing.T) {
	calc := newCGCalc()

	tests := []struct {
		name     string
		purchase string
		sale     string
		wantST   bool
	}{
		{"365 days is short term", "2023-06-01", "2024-05-31", true},
		{"366 days is long term", "2023-06-01", "2024-06-01", false},
		{"intraday-ish flip", "2024-06-01", "2024-06-10", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := calc.Calculate([]domain.CapitalGainsTransaction{{
				ID:            "t",
				AssetType:     domain.ListedEquity,
				PurchaseDate:  date(tt.purchase),
				SaleDate:      date(tt.sale),
				PurchasePrice: decimal.NewFromInt(100000),
				SalePrice:     decimal.NewFromInt(110000),
			}})
			if tt.wantST {
				assert.True(t, res.EquitySTCG.Equal(decimal.NewFromInt(10000)))
				assert.True(t, res.TaxEquitySTCG.Equal(decimal.NewFromInt(2000)), "flat 20%% on STCG")
			} else {
				assert.True(t, res.EquityLTCG.Equal(decimal.NewFromInt(10000)))
				assert.True(t, res.TaxEquitySTCG.IsZero())
			}
		})
	}
}

// TestEquityLTCGExemptionIsAggregate: the 1.25L exemption applies once to
// the whole long-term equity bucket, not once per transaction.
func TestEquityLTCGExemptionIsAggregate(t *testing.T) {
	calc := newCGCalc()

	mkTxn := func(id string, gain int64) domain.CapitalGainsTransaction {
		return domain.CapitalGainsTransaction{
			ID:            id,
			AssetType:     domain.EquityMutualFund,
			PurchaseDate:  date("2020-01-01"),
			SaleDate:      date("2024-01-01"),
			PurchasePrice: decimal.NewFromInt(100000),
			SalePrice:     decimal.NewFromInt(100000 + gain),
		}
	}

	// Two gains of 1L each: per-transaction exemption would zero both out;
	// the aggregate rule leaves 75000 taxable.
	res := calc.Calculate([]domain.CapitalGainsTransaction{
		mkTxn("a", 100000),
		mkTxn("b", 100000),
	})
	assert.True(t, res.EquityLTCG.Equal(decimal.NewFromInt(200000)))
	assert.True(t, res.TaxEquityLTCG.Equal(decimal.NewFromFloat(9375)), // 75000 * 12.5%
		"got %s", res.TaxEquityLTCG.StringFixed(2))
	assert.True(t, res.TaxableGains.Equal(decimal.NewFromInt(75000)))
}

func TestPropertyAndUnlistedClassification(t *testing.T) {
	calc := newCGCalc()

	res := calc.Calculate([]domain.CapitalGainsTransaction{
		{
			ID:            "property short",
			AssetType:     domain.Property,
			PurchaseDate:  date("2023-01-01"),
			SaleDate:      date("2024-06-01"), // ~517 days, within 730
			PurchasePrice: decimal.NewFromInt(5000000),
			SalePrice:     decimal.NewFromInt(5400000),
		},
		{
			ID:            "unlisted long",
			AssetType:     domain.UnlistedShares,
			PurchaseDate:  date("2020-01-01"),
			SaleDate:      date("2024-01-01"),
			PurchasePrice: decimal.NewFromInt(1000000),
			SalePrice:     decimal.NewFromInt(1200000),
		},
	})

	// Short-term "other" gains are slab-taxed upstream; the bucket rate
	// here is explicitly zero.
	assert.True(t, res.OtherSTCG.Equal(decimal.NewFromInt(400000)))
	assert.True(t, res.TaxOtherSTCG.IsZero())

	// Long-term other gains: flat 12.5%, no exemption threshold.
	assert.True(t, res.OtherLTCG.Equal(decimal.NewFromInt(200000)))
	assert.True(t, res.TaxOtherLTCG.Equal(decimal.NewFromInt(25000)))

	assert.True(t, res.TotalTax.Equal(decimal.NewFromInt(25000)))
}

// TestOtherAssetUsesEquityThreshold: miscellaneous assets classify on the
// 365-day threshold but land in the "other" buckets.
func TestOtherAssetUsesEquityThreshold(t *testing.T) {
	calc := newCGCalc()

	res := calc.Calculate([]domain.CapitalGainsTransaction{{
		ID:            "gold",
		AssetType:     domain.OtherAsset,
		PurchaseDate:  date("2023-01-01"),
		SaleDate:      date("2024-03-01"), // 425 days
		PurchasePrice: decimal.NewFromInt(100000),
		SalePrice:     decimal.NewFromInt(140000),
	}})

	assert.True(t, res.OtherLTCG.Equal(decimal.NewFromInt(40000)))
	assert.True(t, res.TaxOtherLTCG.Equal(decimal.NewFromInt(5000)))
}
