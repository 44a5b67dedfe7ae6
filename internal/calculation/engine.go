package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/taxgo/itr-calculator/internal/domain"
	"github.com/taxgo/itr-calculator/pkg/dateutil"
)

// Mode selects the engine variant.
type Mode string

const (
	// ModeWithCapitalGains taxes the transaction list alongside slab income.
	ModeWithCapitalGains Mode = "with_capital_gains"
	// ModeBasic ignores the transaction list entirely (slab tax only).
	ModeBasic Mode = "basic"
)

// Engine composes the slab and capital-gains calculators into the full
// regime computation: deductions, age-banded slabs, rebate, surcharge with
// marginal relief, and cess.
//
// The engine is a pure function of its arguments: it performs no I/O, keeps
// no mutable state across calls, and may be shared across goroutines.
type Engine struct {
	Rules  *domain.TaxRuleSet
	CGCalc *CapitalGainsCalculator
	Mode   Mode
	Logger Logger
}

// NewEngine creates an engine over the default assessment-year rule set.
func NewEngine() *Engine {
	return NewEngineWithRules(domain.DefaultRuleSetAY2526())
}

// NewEngineWithRules creates an engine over an explicit rule set.
func NewEngineWithRules(rules *domain.TaxRuleSet) *Engine {
	return &Engine{
		Rules:  rules,
		CGCalc: NewCapitalGainsCalculator(rules.CapitalGains),
		Mode:   ModeWithCapitalGains,
		Logger: NopLogger{},
	}
}

// NewEngineForYear resolves the assessment year against a registry. A lookup
// miss falls back to the registry default with a logged warning rather than
// an error; the engine must always be able to compute.
func NewEngineForYear(registry *domain.RuleSetRegistry, assessmentYear string, logger Logger) *Engine {
	if logger == nil {
		logger = NopLogger{}
	}
	rules, ok := registry.Lookup(assessmentYear)
	if !ok {
		logger.Warnf("no rule set for assessment year %s, falling back to %s", assessmentYear, rules.AssessmentYear)
	}
	e := NewEngineWithRules(rules)
	e.Logger = logger
	return e
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op
// logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// ComputeTax computes the total liability for one regime. It never fails:
// missing numeric fields are zero, unparseable dates fall back to defaults,
// and malformed transactions are skipped (the upstream parser surfaces its
// own errors before the engine is ever called).
func (e *Engine) ComputeTax(ret *domain.TaxReturn, regime domain.Regime) *domain.TaxComputationResult {
	gti := ret.Income.GrossTotal()

	var cg CapitalGainsResult
	if e.Mode != ModeBasic {
		cg = e.CGCalc.Calculate(ret.CapitalGains)
	}

	age := dateutil.AgeFromString(ret.DateOfBirth, e.Rules.ReferenceDate, e.Rules.FallbackAge)

	stage := e.slabStage(ret, regime, gti, age)
	taxPayable := stage.taxAfterRebate.Add(cg.TotalTax)

	surcharge := e.surchargeWithMarginalRelief(ret, regime, gti, age, taxPayable, cg.TotalTax)

	taxBeforeCess := taxPayable.Add(surcharge)
	cess := taxBeforeCess.Mul(e.Rules.CessRate)
	total := taxBeforeCess.Add(cess).Round(0)

	return &domain.TaxComputationResult{
		Regime:              regime,
		TaxableIncome:       stage.taxableIncome.Add(cg.TaxableGains),
		TaxableIncomeNormal: stage.taxableIncome,
		TaxOnNormalIncome:   stage.slabTax,
		TaxOnSTCG:           cg.TaxSTCG(),
		TaxOnLTCG:           cg.TaxLTCG(),
		Rebate:              stage.rebate,
		TaxAfterRebate:      stage.taxAfterRebate,
		Surcharge:           surcharge,
		TaxBeforeCess:       taxBeforeCess,
		Cess:                cess,
		TotalTaxLiability:   total,
		SlabBreakdown:       stage.breakdown,
	}
}

// TaxPayable is the total-only convenience form of ComputeTax.
func (e *Engine) TaxPayable(ret *domain.TaxReturn, regime domain.Regime) decimal.Decimal {
	return e.ComputeTax(ret, regime).TotalTaxLiability
}

// slabStageResult carries the pre-surcharge pipeline outputs.
type slabStageResult struct {
	taxableIncome  decimal.Decimal
	slabTax        decimal.Decimal
	rebate         decimal.Decimal
	taxAfterRebate decimal.Decimal
	breakdown      []domain.SlabBreakdownEntry
}

// slabStage runs the deterministic pre-surcharge pipeline for a given gross
// total income: standard deduction, regime deductions, slab tax, rebate.
// gti is passed explicitly so that marginal relief can re-run the stage at a
// bracket threshold while holding everything else fixed.
func (e *Engine) slabStage(ret *domain.TaxReturn, regime domain.Regime, gti decimal.Decimal, age int) slabStageResult {
	taxable := gti
	if ret.Income.Salary.GreaterThan(decimal.Zero) {
		taxable = taxable.Sub(e.Rules.StandardDeduction)
	}

	taxable = taxable.Sub(e.deductionsFor(ret.Deductions, regime))
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}

	slabCalc := NewSlabCalculator(e.Rules.SlabsFor(regime, age))
	slabTax, breakdown := slabCalc.Calculate(taxable)

	// Section 87A: the rebate keys off gross total income, not taxable
	// income, and can never push the tax below zero.
	rebateRule := e.Rules.RebateFor(regime)
	rebate := decimal.Zero
	if gti.LessThanOrEqual(rebateRule.Threshold) {
		rebate = decimal.Min(rebateRule.Cap, slabTax)
	}

	return slabStageResult{
		taxableIncome:  taxable,
		slabTax:        slabTax,
		rebate:         rebate,
		taxAfterRebate: slabTax.Sub(rebate),
		breakdown:      breakdown,
	}
}

// deductionsFor totals the allowable chapter VI-A (and 24B) claims for a
// regime. The old regime caps 80C, 80TTA and 80TTB and allows the rest
// uncapped; the new regime allows only the employer NPS contribution.
func (e *Engine) deductionsFor(d domain.Deductions, regime domain.Regime) decimal.Decimal {
	if regime == domain.RegimeNew {
		return d.Section80CCD2
	}
	caps := e.Rules.DeductionCaps
	return decimal.Min(d.Section80C, caps.Section80C).
		Add(decimal.Min(d.Section80TTA, caps.Section80TTA)).
		Add(decimal.Min(d.Section80TTB, caps.Section80TTB)).
		Add(d.Section80D).
		Add(d.Section24B).
		Add(d.Section80CCD1B).
		Add(d.Section80CCD2).
		Add(d.Section80G)
}

// surchargeWithMarginalRelief applies the bracketed surcharge on tax and
// caps it so that crossing a bracket threshold never raises the total tax
// by more than the income above the threshold. The cap re-runs the
// pre-surcharge pipeline at the threshold income (salary adjusted to hit
// it, everything else held fixed) and adds the surcharge that threshold
// income attracts itself: income exactly at a threshold sits in the next
// lower bracket, so each recursive step resolves to a strictly lower
// bracket and the recursion bottoms out below the first threshold.
func (e *Engine) surchargeWithMarginalRelief(ret *domain.TaxReturn, regime domain.Regime, gti decimal.Decimal, age int, taxPayable, cgTax decimal.Decimal) decimal.Decimal {
	rate, threshold, ok := e.Rules.SurchargeFor(gti)
	if !ok {
		return decimal.Zero
	}

	surcharge := taxPayable.Mul(rate)

	payableAtThreshold := e.taxAtIncome(ret, regime, threshold, age).Add(cgTax)
	surchargeAtThreshold := e.surchargeWithMarginalRelief(ret, regime, threshold, age, payableAtThreshold, cgTax)
	excessIncome := gti.Sub(threshold)
	cap := payableAtThreshold.Add(surchargeAtThreshold).Add(excessIncome)
	if taxPayable.Add(surcharge).GreaterThan(cap) {
		surcharge = decimal.Max(decimal.Zero, cap.Sub(taxPayable))
	}
	return surcharge
}

// taxAtIncome re-runs the pre-surcharge pipeline as if the taxpayer's gross
// total income were exactly targetGTI, adjusting only salary.
func (e *Engine) taxAtIncome(ret *domain.TaxReturn, regime domain.Regime, targetGTI decimal.Decimal, age int) decimal.Decimal {
	adjusted := *ret
	adjusted.Income.Salary = ret.Income.Salary.Add(targetGTI.Sub(ret.Income.GrossTotal()))
	return e.slabStage(&adjusted, regime, targetGTI, age).taxAfterRebate
}
