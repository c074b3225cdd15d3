package currency

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// Code is an ISO 4217 currency code. A Code obtained through Parse is
// guaranteed to exist in the go-money currency registry.
type Code string

// Parse validates and normalizes a currency code. Unknown codes are rejected
// at this boundary so the rest of the system never sees one.
func Parse(s string) (Code, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if money.GetCurrency(code) == nil {
		return "", fmt.Errorf("unknown currency code %q", s)
	}

	return Code(code), nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return c
}

func (c Code) String() string { return string(c) }

// Fraction returns the number of decimal digits conventionally displayed for
// the currency (2 for USD, 0 for JPY, ...).
func (c Code) Fraction() int32 {
	cur := money.GetCurrency(string(c))
	if cur == nil {
		return 2
	}

	return int32(cur.Fraction)
}
