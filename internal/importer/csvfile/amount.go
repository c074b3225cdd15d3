package csvfile

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses an amount cell, accepting both dot-decimal
// ("1,234.56") and European comma-decimal ("1.234,56") notation.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	if lastComma > lastDot {
		// Comma is the decimal separator, dots group thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	return decimal.NewFromString(s)
}
