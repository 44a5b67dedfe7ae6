package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAge(t *testing.T) {
	ref := mustDate(t, "2025-03-31")

	tests := []struct {
		name  string
		birth string
		want  int
	}{
		{"birthday already passed this year", "1995-01-15", 30},
		{"birthday later in the year", "1995-06-15", 29},
		{"birthday exactly on the reference date", "1995-03-31", 30},
		{"day after the reference date", "1995-04-01", 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(mustDate(t, tt.birth), ref))
		})
	}
}

func TestAgeFromStringFallback(t *testing.T) {
	ref := mustDate(t, "2025-03-31")

	assert.Equal(t, 30, AgeFromString("1995-01-15", ref, 30))
	assert.Equal(t, 30, AgeFromString("", ref, 30))
	assert.Equal(t, 30, AgeFromString("15/01/1995", ref, 30))
	assert.Equal(t, 45, AgeFromString("garbage", ref, 45))
}

func TestHoldingPeriodDays(t *testing.T) {
	assert.Equal(t, 366,
		HoldingPeriodDays(mustDate(t, "2023-06-01"), mustDate(t, "2024-06-01")),
		"leap year in between")
	assert.Equal(t, 0,
		HoldingPeriodDays(mustDate(t, "2024-06-01"), mustDate(t, "2024-06-01")))
	assert.Equal(t, 1,
		HoldingPeriodDays(mustDate(t, "2024-06-01"), mustDate(t, "2024-06-02")))
}

func TestSeniorCitizenBands(t *testing.T) {
	assert.False(t, IsSeniorCitizen(59))
	assert.True(t, IsSeniorCitizen(60))
	assert.False(t, IsSuperSeniorCitizen(79))
	assert.True(t, IsSuperSeniorCitizen(80))
}

func TestFinancialYearEnd(t *testing.T) {
	end := FinancialYearEnd(2024)
	assert.Equal(t, 2025, end.Year())
	assert.Equal(t, time.March, end.Month())
	assert.Equal(t, 31, end.Day())
}
