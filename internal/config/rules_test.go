package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRuleSetOverrides(t *testing.T) {
	content := `
assessment_year: "2026-27"
reference_date: "2026-03-31"
standard_deduction: 75000
new_slabs:
  - upper_bound: 400000
    rate: 0
  - upper_bound: 800000
    rate: 0.05
  - rate: 0.30
new_rebate:
  threshold: 1200000
  cap: 60000
capital_gains:
  equity_ltcg_exemption: 150000
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rs, err := LoadRuleSet(path)
	require.NoError(t, err)

	assert.Equal(t, "2026-27", rs.AssessmentYear)
	assert.Equal(t, 2026, rs.ReferenceDate.Year())
	assert.True(t, rs.StandardDeduction.Equal(decimal.NewFromInt(75000)))

	require.Len(t, rs.NewSlabs, 3)
	assert.True(t, rs.NewSlabs[2].Unbounded())
	assert.True(t, rs.NewRebate.Cap.Equal(decimal.NewFromInt(60000)))
	assert.True(t, rs.CapitalGains.EquityLTCGExemption.Equal(decimal.NewFromInt(150000)))

	// Untouched fields keep the built-in defaults.
	assert.True(t, rs.OldRebate.Cap.Equal(decimal.NewFromInt(12500)))
	assert.Equal(t, 365, rs.CapitalGains.EquityLTHoldingDays)
	assert.Len(t, rs.SurchargeBrackets, 4)
}

func TestLoadRuleSetBadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reference_date: \"March 2026\"\n"), 0644))

	_, err := LoadRuleSet(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference_date")
}
