package decimal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRupee(t *testing.T) {
	assert.Equal(t, "100", NewMoney(100.4).RoundRupee().String())
	assert.Equal(t, "101", NewMoney(100.5).RoundRupee().String())
	assert.Equal(t, "0", Zero().RoundRupee().String())
}

func TestFormatIndianGrouping(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0"},
		{123, "₹123"},
		{1234, "₹1,234"},
		{123456, "₹1,23,456"},
		{1234567, "₹12,34,567"},
		{123456789, "₹12,34,56,789"},
		{-1234567, "-₹12,34,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NewMoney(tt.amount).Format())
	}
}

func TestArithmeticHelpers(t *testing.T) {
	a := NewMoney(150000)
	b := NewMoney(50000)

	assert.True(t, a.Add(b).Equal(NewMoney(200000)))
	assert.True(t, a.Sub(b).Equal(NewMoney(100000)))
	assert.True(t, a.ApplyRate(decimal.NewFromFloat(0.04)).Equal(NewMoney(6000)))
	assert.True(t, Min(a, b).Equal(b))
	assert.True(t, Max(a, b).Equal(a))
	assert.False(t, a.IsNegative())
	assert.True(t, b.Sub(a).IsNegative())
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("125000")
	require.NoError(t, err)
	assert.True(t, m.Equal(NewMoney(125000)))

	_, err = NewMoneyFromString("not-a-number")
	require.Error(t, err)
}
