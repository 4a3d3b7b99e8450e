// Package core provides the domain model shared by storage, reporting
// and the HTTP layer.
//
// This file contains money parsing. Monetary amounts travel through the
// system as loosely-typed text, so parsing is centralized here: the
// lenient form substitutes zero for anything unparseable, the strict form
// is for validating user input.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney parses a monetary string leniently.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// tolerates surrounding whitespace. Anything that still fails to parse is
// treated as zero, never as an error, so one malformed record can never
// abort an aggregation.
func ParseMoney(s string) decimal.Decimal {
	d, err := parseDecimal(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseMoneyStrict parses a monetary string for form validation.
// Unlike ParseMoney it reports invalid input, and rejects negative values.
func ParseMoneyStrict(s string) (decimal.Decimal, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("amount cannot be negative")
	}
	return d, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}

	// A single comma with no dot is a decimal separator ("12,34").
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	return decimal.NewFromString(s)
}
