package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const usdPrecision = 2

// SafeParse parses a string into a decimal, returning zero for invalid or
// empty input.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatUSD rounds to 2 decimal places and strips trailing zeros.
func FormatUSD(d decimal.Decimal) string {
	s := d.Round(usdPrecision).StringFixed(usdPrecision)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
