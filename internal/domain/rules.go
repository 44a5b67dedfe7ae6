package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Regime identifies which statutory computation applies.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// TaxSlab is one bracket of a progressive rate table. UpperBound zero marks
// the final, unbounded slab (all remaining income is absorbed there).
type TaxSlab struct {
	UpperBound decimal.Decimal `yaml:"upper_bound" json:"upper_bound"`
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the slab absorbs all remaining income.
func (s TaxSlab) Unbounded() bool {
	return s.UpperBound.IsZero()
}

// SurchargeBracket maps a gross-total-income threshold to a surcharge rate
// on tax. Brackets are ordered ascending by threshold.
type SurchargeBracket struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// DeductionCaps holds the old-regime caps on capped sections. Sections
// without an entry are allowed uncapped.
type DeductionCaps struct {
	Section80C   decimal.Decimal `yaml:"section_80c" json:"section_80c"`
	Section80TTA decimal.Decimal `yaml:"section_80tta" json:"section_80tta"`
	Section80TTB decimal.Decimal `yaml:"section_80ttb" json:"section_80ttb"`
}

// RebateRule is the Section 87A rebate for one regime: if gross total income
// is at or below Threshold, up to Cap is forgiven from slab tax.
type RebateRule struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Cap       decimal.Decimal `yaml:"cap" json:"cap"`
}

// CapitalGainsRules holds the bucket classification thresholds and rates.
type CapitalGainsRules struct {
	EquityLTHoldingDays int `yaml:"equity_lt_holding_days" json:"equity_lt_holding_days"`
	OtherLTHoldingDays  int `yaml:"other_lt_holding_days" json:"other_lt_holding_days"`

	EquitySTCGRate      decimal.Decimal `yaml:"equity_stcg_rate" json:"equity_stcg_rate"`
	EquityLTCGRate      decimal.Decimal `yaml:"equity_ltcg_rate" json:"equity_ltcg_rate"`
	EquityLTCGExemption decimal.Decimal `yaml:"equity_ltcg_exemption" json:"equity_ltcg_exemption"`
	OtherLTCGRate       decimal.Decimal `yaml:"other_ltcg_rate" json:"other_ltcg_rate"`

	// OtherSTCGRate is explicitly zero: short-term gains on property,
	// unlisted shares and miscellaneous assets are slab-taxed upstream,
	// not by the capital-gains buckets.
	OtherSTCGRate decimal.Decimal `yaml:"other_stcg_rate" json:"other_stcg_rate"`

	// GrandfatherCutoff is the statutory date before which acquisitions
	// qualify for the FMV cost-basis step-up.
	GrandfatherCutoff time.Time `yaml:"grandfather_cutoff" json:"grandfather_cutoff"`
}

// TaxRuleSet is the immutable rule configuration for one assessment year.
// Engines read it; nothing mutates it after construction, so one rule set
// may be shared across concurrent computations.
type TaxRuleSet struct {
	AssessmentYear string `yaml:"assessment_year" json:"assessment_year"`

	// ReferenceDate anchors age derivation (end of the financial year).
	ReferenceDate time.Time `yaml:"reference_date" json:"reference_date"`
	FallbackAge   int       `yaml:"fallback_age" json:"fallback_age"`

	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`

	// Old-regime slab tables by age band, plus the single new-regime table.
	OldSlabs            []TaxSlab `yaml:"old_slabs" json:"old_slabs"`
	OldSlabsSenior      []TaxSlab `yaml:"old_slabs_senior" json:"old_slabs_senior"`
	OldSlabsSuperSenior []TaxSlab `yaml:"old_slabs_super_senior" json:"old_slabs_super_senior"`
	NewSlabs            []TaxSlab `yaml:"new_slabs" json:"new_slabs"`

	DeductionCaps DeductionCaps `yaml:"deduction_caps" json:"deduction_caps"`

	OldRebate RebateRule `yaml:"old_rebate" json:"old_rebate"`
	NewRebate RebateRule `yaml:"new_rebate" json:"new_rebate"`

	SurchargeBrackets []SurchargeBracket `yaml:"surcharge_brackets" json:"surcharge_brackets"`

	CapitalGains CapitalGainsRules `yaml:"capital_gains" json:"capital_gains"`

	CessRate decimal.Decimal `yaml:"cess_rate" json:"cess_rate"`
}

// SlabsFor selects the slab table for a regime and taxpayer age. The old
// regime grants seniors (60-79) and super seniors (80+) a higher basic
// exemption; the new regime uses one table for everyone.
func (rs *TaxRuleSet) SlabsFor(regime Regime, age int) []TaxSlab {
	if regime == RegimeNew {
		return rs.NewSlabs
	}
	switch {
	case age >= 80:
		return rs.OldSlabsSuperSenior
	case age >= 60:
		return rs.OldSlabsSenior
	default:
		return rs.OldSlabs
	}
}

// RebateFor returns the Section 87A rule for a regime.
func (rs *TaxRuleSet) RebateFor(regime Regime) RebateRule {
	if regime == RegimeNew {
		return rs.NewRebate
	}
	return rs.OldRebate
}

// SurchargeFor returns the applicable surcharge rate and the lower income
// threshold of the matched bracket. ok is false below the first bracket.
func (rs *TaxRuleSet) SurchargeFor(grossTotalIncome decimal.Decimal) (rate, threshold decimal.Decimal, ok bool) {
	for _, b := range rs.SurchargeBrackets {
		if grossTotalIncome.GreaterThan(b.Threshold) {
			rate, threshold, ok = b.Rate, b.Threshold, true
		}
	}
	return rate, threshold, ok
}

// DefaultRuleSetAY2526 returns the rule set for assessment year 2025-26
// (financial year 2024-25).
func DefaultRuleSetAY2526() *TaxRuleSet {
	oldSlabs := func(basicExemption int64) []TaxSlab {
		return []TaxSlab{
			{UpperBound: decimal.NewFromInt(basicExemption), Rate: decimal.Zero},
			{UpperBound: decimal.NewFromInt(500000), Rate: decimal.NewFromFloat(0.05)},
			{UpperBound: decimal.NewFromInt(1000000), Rate: decimal.NewFromFloat(0.20)},
			{Rate: decimal.NewFromFloat(0.30)},
		}
	}
	return &TaxRuleSet{
		AssessmentYear:    "2025-26",
		ReferenceDate:     time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		FallbackAge:       30,
		StandardDeduction: decimal.NewFromInt(50000),

		OldSlabs:            oldSlabs(250000),
		OldSlabsSenior:      oldSlabs(300000),
		OldSlabsSuperSenior: oldSlabs(500000),
		NewSlabs: []TaxSlab{
			{UpperBound: decimal.NewFromInt(300000), Rate: decimal.Zero},
			{UpperBound: decimal.NewFromInt(600000), Rate: decimal.NewFromFloat(0.05)},
			{UpperBound: decimal.NewFromInt(900000), Rate: decimal.NewFromFloat(0.10)},
			{UpperBound: decimal.NewFromInt(1200000), Rate: decimal.NewFromFloat(0.15)},
			{UpperBound: decimal.NewFromInt(1500000), Rate: decimal.NewFromFloat(0.20)},
			{Rate: decimal.NewFromFloat(0.30)},
		},

		DeductionCaps: DeductionCaps{
			Section80C:   decimal.NewFromInt(150000),
			Section80TTA: decimal.NewFromInt(10000),
			Section80TTB: decimal.NewFromInt(50000),
		},

		OldRebate: RebateRule{Threshold: decimal.NewFromInt(500000), Cap: decimal.NewFromInt(12500)},
		NewRebate: RebateRule{Threshold: decimal.NewFromInt(700000), Cap: decimal.NewFromInt(25000)},

		SurchargeBrackets: []SurchargeBracket{
			{Threshold: decimal.NewFromInt(5000000), Rate: decimal.NewFromFloat(0.10)},
			{Threshold: decimal.NewFromInt(10000000), Rate: decimal.NewFromFloat(0.15)},
			{Threshold: decimal.NewFromInt(20000000), Rate: decimal.NewFromFloat(0.25)},
			{Threshold: decimal.NewFromInt(50000000), Rate: decimal.NewFromFloat(0.37)},
		},

		CapitalGains: CapitalGainsRules{
			EquityLTHoldingDays: 365,
			OtherLTHoldingDays:  730,
			EquitySTCGRate:      decimal.NewFromFloat(0.20),
			EquityLTCGRate:      decimal.NewFromFloat(0.125),
			EquityLTCGExemption: decimal.NewFromInt(125000),
			OtherLTCGRate:       decimal.NewFromFloat(0.125),
			OtherSTCGRate:       decimal.Zero,
			GrandfatherCutoff:   time.Date(2018, 1, 31, 0, 0, 0, 0, time.UTC),
		},

		CessRate: decimal.NewFromFloat(0.04),
	}
}

// RuleSetRegistry holds rule sets keyed by assessment year so that multiple
// years can coexist side by side.
type RuleSetRegistry struct {
	rules     map[string]*TaxRuleSet
	defaultAY string
}

// NewRuleSetRegistry builds a registry seeded with the given rule sets; the
// first becomes the fallback default.
func NewRuleSetRegistry(ruleSets ...*TaxRuleSet) *RuleSetRegistry {
	reg := &RuleSetRegistry{rules: make(map[string]*TaxRuleSet)}
	for _, rs := range ruleSets {
		if reg.defaultAY == "" {
			reg.defaultAY = rs.AssessmentYear
		}
		reg.rules[rs.AssessmentYear] = rs
	}
	return reg
}

// Lookup returns the rule set for an assessment year. On a miss it returns
// the default rule set and false so callers can log the fallback. An empty
// registry falls back to the built-in rule set so Lookup never returns nil.
func (r *RuleSetRegistry) Lookup(assessmentYear string) (*TaxRuleSet, bool) {
	if rs, ok := r.rules[assessmentYear]; ok {
		return rs, true
	}
	if rs, ok := r.rules[r.defaultAY]; ok {
		return rs, false
	}
	return DefaultRuleSetAY2526(), false
}
