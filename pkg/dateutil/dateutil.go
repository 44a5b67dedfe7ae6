package dateutil

import (
	"time"
)

// DateLayout is the calendar date format used throughout input files.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Age calculates the completed age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AgeFromString derives age from a YYYY-MM-DD birth date string relative to
// atDate. Unparseable input yields fallback instead of an error; tax slab
// selection must always resolve to some age band.
func AgeFromString(dob string, atDate time.Time, fallback int) int {
	birth, err := ParseDate(dob)
	if err != nil {
		return fallback
	}
	return Age(birth, atDate)
}

// HoldingPeriodDays returns the number of whole days between acquisition and
// disposal of an asset.
func HoldingPeriodDays(purchaseDate, saleDate time.Time) int {
	return int(saleDate.Sub(purchaseDate).Hours() / 24)
}

// IsSeniorCitizen reports whether the taxpayer is 60 or older (higher basic
// exemption under the old regime).
func IsSeniorCitizen(age int) bool {
	return age >= 60
}

// IsSuperSeniorCitizen reports whether the taxpayer is 80 or older.
func IsSuperSeniorCitizen(age int) bool {
	return age >= 80
}

// FinancialYearEnd returns 31 March of the year in which the financial year
// starting in startYear ends, e.g. FinancialYearEnd(2024) -> 2025-03-31.
func FinancialYearEnd(startYear int) time.Time {
	return time.Date(startYear+1, 3, 31, 0, 0, 0, 0, time.UTC)
}
