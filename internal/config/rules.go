package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/taxgo/itr-calculator/internal/domain"
	"github.com/taxgo/itr-calculator/pkg/dateutil"
)

// RuleSetFile is the YAML shape of a rule-set override. Amounts and rates
// are plain floats in the file and are converted to decimals on load, the
// same way taxpayer input is handled.
type RuleSetFile struct {
	AssessmentYear string  `yaml:"assessment_year"`
	ReferenceDate  string  `yaml:"reference_date"`
	FallbackAge    int     `yaml:"fallback_age"`
	CessRate       float64 `yaml:"cess_rate"`

	StandardDeduction float64 `yaml:"standard_deduction"`

	OldSlabs            []slabFile `yaml:"old_slabs"`
	OldSlabsSenior      []slabFile `yaml:"old_slabs_senior"`
	OldSlabsSuperSenior []slabFile `yaml:"old_slabs_super_senior"`
	NewSlabs            []slabFile `yaml:"new_slabs"`

	DeductionCaps struct {
		Section80C   float64 `yaml:"section_80c"`
		Section80TTA float64 `yaml:"section_80tta"`
		Section80TTB float64 `yaml:"section_80ttb"`
	} `yaml:"deduction_caps"`

	OldRebate rebateFile `yaml:"old_rebate"`
	NewRebate rebateFile `yaml:"new_rebate"`

	SurchargeBrackets []surchargeFile `yaml:"surcharge_brackets"`

	CapitalGains struct {
		EquityLTHoldingDays int     `yaml:"equity_lt_holding_days"`
		OtherLTHoldingDays  int     `yaml:"other_lt_holding_days"`
		EquitySTCGRate      float64 `yaml:"equity_stcg_rate"`
		EquityLTCGRate      float64 `yaml:"equity_ltcg_rate"`
		EquityLTCGExemption float64 `yaml:"equity_ltcg_exemption"`
		OtherLTCGRate       float64 `yaml:"other_ltcg_rate"`
		OtherSTCGRate       float64 `yaml:"other_stcg_rate"`
		GrandfatherCutoff   string  `yaml:"grandfather_cutoff"`
	} `yaml:"capital_gains"`
}

type slabFile struct {
	UpperBound float64 `yaml:"upper_bound"` // zero = unbounded
	Rate       float64 `yaml:"rate"`
}

type rebateFile struct {
	Threshold float64 `yaml:"threshold"`
	Cap       float64 `yaml:"cap"`
}

type surchargeFile struct {
	Threshold float64 `yaml:"threshold"`
	Rate      float64 `yaml:"rate"`
}

// LoadRuleSet loads a rule-set override file and converts it to a
// domain.TaxRuleSet. Fields left out of the file keep the default rule
// set's values, so a file may override just the slabs for a new year.
func LoadRuleSet(filename string) (*domain.TaxRuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rf RuleSetFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return rf.ToRuleSet()
}

// ToRuleSet converts the file representation to the immutable engine rule
// set, starting from the built-in defaults.
func (rf *RuleSetFile) ToRuleSet() (*domain.TaxRuleSet, error) {
	rs := domain.DefaultRuleSetAY2526()

	if rf.AssessmentYear != "" {
		rs.AssessmentYear = rf.AssessmentYear
	}
	if rf.ReferenceDate != "" {
		t, err := dateutil.ParseDate(rf.ReferenceDate)
		if err != nil {
			return nil, fmt.Errorf("reference_date: %w", err)
		}
		rs.ReferenceDate = t
	}
	if rf.FallbackAge != 0 {
		rs.FallbackAge = rf.FallbackAge
	}
	if rf.CessRate != 0 {
		rs.CessRate = decimal.NewFromFloat(rf.CessRate)
	}
	if rf.StandardDeduction != 0 {
		rs.StandardDeduction = decimal.NewFromFloat(rf.StandardDeduction)
	}

	if len(rf.OldSlabs) > 0 {
		rs.OldSlabs = convertSlabs(rf.OldSlabs)
	}
	if len(rf.OldSlabsSenior) > 0 {
		rs.OldSlabsSenior = convertSlabs(rf.OldSlabsSenior)
	}
	if len(rf.OldSlabsSuperSenior) > 0 {
		rs.OldSlabsSuperSenior = convertSlabs(rf.OldSlabsSuperSenior)
	}
	if len(rf.NewSlabs) > 0 {
		rs.NewSlabs = convertSlabs(rf.NewSlabs)
	}

	if rf.DeductionCaps.Section80C != 0 {
		rs.DeductionCaps.Section80C = decimal.NewFromFloat(rf.DeductionCaps.Section80C)
	}
	if rf.DeductionCaps.Section80TTA != 0 {
		rs.DeductionCaps.Section80TTA = decimal.NewFromFloat(rf.DeductionCaps.Section80TTA)
	}
	if rf.DeductionCaps.Section80TTB != 0 {
		rs.DeductionCaps.Section80TTB = decimal.NewFromFloat(rf.DeductionCaps.Section80TTB)
	}

	if rf.OldRebate.Threshold != 0 {
		rs.OldRebate = domain.RebateRule{
			Threshold: decimal.NewFromFloat(rf.OldRebate.Threshold),
			Cap:       decimal.NewFromFloat(rf.OldRebate.Cap),
		}
	}
	if rf.NewRebate.Threshold != 0 {
		rs.NewRebate = domain.RebateRule{
			Threshold: decimal.NewFromFloat(rf.NewRebate.Threshold),
			Cap:       decimal.NewFromFloat(rf.NewRebate.Cap),
		}
	}

	if len(rf.SurchargeBrackets) > 0 {
		brackets := make([]domain.SurchargeBracket, 0, len(rf.SurchargeBrackets))
		for _, b := range rf.SurchargeBrackets {
			brackets = append(brackets, domain.SurchargeBracket{
				Threshold: decimal.NewFromFloat(b.Threshold),
				Rate:      decimal.NewFromFloat(b.Rate),
			})
		}
		rs.SurchargeBrackets = brackets
	}

	cg := rf.CapitalGains
	if cg.EquityLTHoldingDays != 0 {
		rs.CapitalGains.EquityLTHoldingDays = cg.EquityLTHoldingDays
	}
	if cg.OtherLTHoldingDays != 0 {
		rs.CapitalGains.OtherLTHoldingDays = cg.OtherLTHoldingDays
	}
	if cg.EquitySTCGRate != 0 {
		rs.CapitalGains.EquitySTCGRate = decimal.NewFromFloat(cg.EquitySTCGRate)
	}
	if cg.EquityLTCGRate != 0 {
		rs.CapitalGains.EquityLTCGRate = decimal.NewFromFloat(cg.EquityLTCGRate)
	}
	if cg.EquityLTCGExemption != 0 {
		rs.CapitalGains.EquityLTCGExemption = decimal.NewFromFloat(cg.EquityLTCGExemption)
	}
	if cg.OtherLTCGRate != 0 {
		rs.CapitalGains.OtherLTCGRate = decimal.NewFromFloat(cg.OtherLTCGRate)
	}
	if cg.OtherSTCGRate != 0 {
		rs.CapitalGains.OtherSTCGRate = decimal.NewFromFloat(cg.OtherSTCGRate)
	}
	if cg.GrandfatherCutoff != "" {
		t, err := dateutil.ParseDate(cg.GrandfatherCutoff)
		if err != nil {
			return nil, fmt.Errorf("capital_gains.grandfather_cutoff: %w", err)
		}
		rs.CapitalGains.GrandfatherCutoff = t
	}

	return rs, nil
}

func convertSlabs(in []slabFile) []domain.TaxSlab {
	out := make([]domain.TaxSlab, 0, len(in))
	for _, s := range in {
		out = append(out, domain.TaxSlab{
			UpperBound: decimal.NewFromFloat(s.UpperBound),
			Rate:       decimal.NewFromFloat(s.Rate),
		})
	}
	return out
}
