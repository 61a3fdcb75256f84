// Package numeric parses the locale-formatted decimals found in the rate sheets.
package numeric

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	"github.com/shopspring/decimal"
)

// NeutralFactor is applied when no profit markup is configured for a pair.
var NeutralFactor = decimal.NewFromInt(1)

// Bounds on accepted decimals. Exponent notation is allowed, so without them a
// short input like "1e20000000" would expand into millions of digits.
const (
	maxInputLength    = 64
	maxIntegerDigits  = 30
	maxFractionDigits = 30
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// NormalizeDecimalString rewrites s so that '.' is the decimal mark.
// "0,93" becomes "0.93". When both separators appear, the last one is the
// decimal mark and the other is dropped: "4.000,50" and "4,000.50" both give "4000.50".
func NormalizeDecimalString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return strings.Replace(s, ",", ".", 1)
}

// ParseDecimal parses a locale-formatted decimal.
func ParseDecimal(s string) (decimal.Decimal, error) {
	return parseBounded(s, NormalizeDecimalString(s))
}

func parseBounded(raw, normalized string) (decimal.Decimal, error) {
	if normalized == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}
	if len(normalized) > maxInputLength {
		return decimal.Zero, fmt.Errorf("'%.16s...' is too long to be a number", raw)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("'%s' is not a number: %w", raw, err)
	}
	if d.IsZero() {
		return d, nil
	}
	exp := int64(d.Exponent())
	if int64(d.NumDigits())+exp > maxIntegerDigits || -exp > maxFractionDigits {
		return decimal.Zero, fmt.Errorf("'%s' is out of range", raw)
	}
	return d, nil
}

// parseDecimalPrefix parses the longest leading number of s, ignoring what follows:
// "1,2,3" gives 1.2 and "95%" gives 95.
func parseDecimalPrefix(s string) (decimal.Decimal, error) {
	normalized := NormalizeDecimalString(s)
	return parseBounded(s, leadingNumber.FindString(normalized))
}

// ParseFactor parses a profit-factor cell. Trailing text after a leading number
// is ignored. Empty, unparsable and zero cells mean "no markup configured" and
// yield NeutralFactor; this never fails.
func ParseFactor(s string) decimal.Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		d, err = parseDecimalPrefix(s)
	}
	if err != nil || d.IsZero() {
		return NeutralFactor
	}
	return d
}

// ParseRate parses a quote cell stored under key. Unlike factors, an empty,
// unparsable or zero quote is an ErrRateOrFactorInvalid error.
func ParseRate(key, s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, apperrors.NewRateOrFactorInvalidError(key, s)
	}
	return d, nil
}

// ParseAmount parses the amount requested by a client. It must be a non-zero
// number within the bounds of ParseDecimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return decimal.Zero, apperrors.NewInvalidRequestError("cantidad '%s' is not a number", s)
	}
	if d.IsZero() {
		return decimal.Zero, apperrors.NewInvalidRequestError("cantidad must not be zero")
	}
	return d, nil
}
