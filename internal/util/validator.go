package util

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary amount from form input. Only the numeric
// format is checked; sign and magnitude are not restricted, matching the
// record-creation contract.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// FormatAmount renders a decimal with two fraction digits for display
// and export.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
