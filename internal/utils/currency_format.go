package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of decimals amounts are written with.
const AmountPrecision = 2

// FormatAmount formats an amount with two decimals.
// Example: 12.3456 returns "12.35", 995 returns "995.00"
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(AmountPrecision)
}

// ParseAmount parses an amount written by FormatAmount, with or without a leading "$".
func ParseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}
