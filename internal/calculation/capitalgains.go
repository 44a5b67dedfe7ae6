package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/taxgo/itr-calculator/internal/domain"
	"github.com/taxgo/itr-calculator/pkg/dateutil"
)

// CapitalGainsCalculator classifies realized transactions into short/long
// term buckets per asset class and taxes each bucket at its statutory rate.
type CapitalGainsCalculator struct {
	Rules domain.CapitalGainsRules
}

// NewCapitalGainsCalculator creates a calculator over the given rules.
func NewCapitalGainsCalculator(rules domain.CapitalGainsRules) *CapitalGainsCalculator {
	return &CapitalGainsCalculator{Rules: rules}
}

// CapitalGainsResult carries the per-bucket gains and taxes of one
// computation. Bucket rates apply to the aggregated gains, never to
// individual transactions.
type CapitalGainsResult struct {
	EquitySTCG decimal.Decimal
	EquityLTCG decimal.Decimal
	OtherSTCG  decimal.Decimal
	OtherLTCG  decimal.Decimal

	TaxEquitySTCG decimal.Decimal
	TaxEquityLTCG decimal.Decimal
	TaxOtherSTCG  decimal.Decimal
	TaxOtherLTCG  decimal.Decimal

	// TaxableGains is the sum of bucket gains actually subject to bucket
	// rates (equity LTCG counted net of the aggregate exemption).
	TaxableGains decimal.Decimal

	// TotalTax is rounded to the whole rupee.
	TotalTax decimal.Decimal
}

// TaxSTCG returns the combined short-term bucket tax.
func (r CapitalGainsResult) TaxSTCG() decimal.Decimal {
	return r.TaxEquitySTCG.Add(r.TaxOtherSTCG)
}

// TaxLTCG returns the combined long-term bucket tax.
func (r CapitalGainsResult) TaxLTCG() decimal.Decimal {
	return r.TaxEquityLTCG.Add(r.TaxOtherLTCG)
}

// Calculate nets every positive gain into its bucket and applies the bucket
// rates. Transactions with a missing date or a non-positive gain contribute
// nothing; losses are not offset against other gains or carried forward.
func (cgc *CapitalGainsCalculator) Calculate(txns []domain.CapitalGainsTransaction) CapitalGainsResult {
	var res CapitalGainsResult

	for _, tx := range txns {
		if tx.PurchaseDate == nil || tx.SaleDate == nil {
			continue
		}

		gain := tx.SalePrice.Sub(cgc.costBasis(tx)).Sub(tx.Expenses)
		if gain.LessThanOrEqual(decimal.Zero) {
			continue
		}

		holdingDays := dateutil.HoldingPeriodDays(*tx.PurchaseDate, *tx.SaleDate)
		switch {
		case tx.AssetType.IsEquity():
			if holdingDays > cgc.Rules.EquityLTHoldingDays {
				res.EquityLTCG = res.EquityLTCG.Add(gain)
			} else {
				res.EquitySTCG = res.EquitySTCG.Add(gain)
			}
		case tx.AssetType == domain.Property || tx.AssetType == domain.UnlistedShares:
			if holdingDays > cgc.Rules.OtherLTHoldingDays {
				res.OtherLTCG = res.OtherLTCG.Add(gain)
			} else {
				res.OtherSTCG = res.OtherSTCG.Add(gain)
			}
		default:
			// Miscellaneous assets share the equity holding threshold
			// but land in the "other" buckets.
			if holdingDays > cgc.Rules.EquityLTHoldingDays {
				res.OtherLTCG = res.OtherLTCG.Add(gain)
			} else {
				res.OtherSTCG = res.OtherSTCG.Add(gain)
			}
		}
	}

	// The LTCG exemption applies once to the aggregated equity bucket.
	taxableEquityLTCG := decimal.Max(decimal.Zero, res.EquityLTCG.Sub(cgc.Rules.EquityLTCGExemption))

	res.TaxEquitySTCG = res.EquitySTCG.Mul(cgc.Rules.EquitySTCGRate)
	res.TaxEquityLTCG = taxableEquityLTCG.Mul(cgc.Rules.EquityLTCGRate)
	res.TaxOtherSTCG = res.OtherSTCG.Mul(cgc.Rules.OtherSTCGRate)
	res.TaxOtherLTCG = res.OtherLTCG.Mul(cgc.Rules.OtherLTCGRate)

	res.TaxableGains = res.EquitySTCG.Add(taxableEquityLTCG).Add(res.OtherSTCG).Add(res.OtherLTCG)
	res.TotalTax = res.TaxEquitySTCG.
		Add(res.TaxEquityLTCG).
		Add(res.TaxOtherSTCG).
		Add(res.TaxOtherLTCG).
		Round(0)

	return res
}

// costBasis applies the grandfathered step-up: assets acquired before the
// statutory cutoff may substitute their 31 Jan 2018 fair market value for
// the purchase price when that is higher.
func (cgc *CapitalGainsCalculator) costBasis(tx domain.CapitalGainsTransaction) decimal.Decimal {
	if tx.FMV2018 != nil && tx.PurchaseDate.Before(cgc.Rules.GrandfatherCutoff) {
		return decimal.Max(tx.PurchasePrice, *tx.FMV2018)
	}
	return tx.PurchasePrice
}
