package domain

import (
	"github.com/shopspring/decimal"
)

// SlabBreakdownEntry is one row of the slab-wise tax breakdown, ordered
// ascending by slab boundary.
type SlabBreakdownEntry struct {
	RangeLabel    string          `json:"range"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	RatePercent   decimal.Decimal `json:"rate_percent"`
	Tax           decimal.Decimal `json:"tax"`
}

// TaxComputationResult is the full output of one regime computation.
type TaxComputationResult struct {
	Regime Regime `json:"regime"`

	// TaxableIncomeNormal is income taxed at slab rates after deductions;
	// TaxableIncome additionally includes the taxable capital gains.
	TaxableIncome       decimal.Decimal `json:"taxable_income"`
	TaxableIncomeNormal decimal.Decimal `json:"taxable_income_normal"`

	TaxOnNormalIncome decimal.Decimal `json:"tax_on_normal_income"`
	TaxOnSTCG         decimal.Decimal `json:"tax_on_stcg"`
	TaxOnLTCG         decimal.Decimal `json:"tax_on_ltcg"`

	Rebate         decimal.Decimal `json:"rebate"`
	TaxAfterRebate decimal.Decimal `json:"tax_after_rebate"`
	Surcharge      decimal.Decimal `json:"surcharge"`
	TaxBeforeCess  decimal.Decimal `json:"tax_before_cess"`
	Cess           decimal.Decimal `json:"cess"`

	// TotalTaxLiability is rounded to the whole rupee.
	TotalTaxLiability decimal.Decimal `json:"total_tax_liability"`

	SlabBreakdown []SlabBreakdownEntry `json:"slab_breakdown"`
}

// RegimeComparison reports both regime computations side by side with the
// recommended (cheaper) regime and the absolute savings from choosing it.
type RegimeComparison struct {
	Old *TaxComputationResult `json:"old_regime"`
	New *TaxComputationResult `json:"new_regime"`

	Recommended Regime          `json:"recommended"`
	Savings     decimal.Decimal `json:"savings"`
}
