package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxMoneyCents is the largest amount ParseMoney accepts: 1,000,000.00.
const MaxMoneyCents = 100_000_000

// ParseMoney turns an amount such as "8.50" into cents. More than two
// decimals or negative amounts are rejected rather than rounded.
func ParseMoney(value string) (int64, error) {
	value = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "$"))
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid amount", value)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("amount cannot be negative")
	}

	cents := amount.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("%q has more than two decimals", value)
	}
	if cents.GreaterThan(decimal.NewFromInt(MaxMoneyCents)) {
		return 0, fmt.Errorf("amount cannot exceed %s", FormatMoney(MaxMoneyCents))
	}

	return cents.IntPart(), nil
}

// FormatMoney renders cents with two decimals, e.g. 1700 -> "17.00".
func FormatMoney(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
