package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ConversionResult is the outcome of one currency conversion.
// RateID and RateTimestamp are copied from the resolved rate row as-is.
type ConversionResult struct {
	Amount        decimal.Decimal
	Origin        string
	Destination   string
	Converted     decimal.Decimal
	Factor        decimal.Decimal
	RateID        string
	RateTimestamp string
}

// Description renders the request the way clients display it, e.g. "100 USD a COP".
func (r ConversionResult) Description() string {
	return fmt.Sprintf("%s %s a %s", r.Amount.String(), r.Origin, r.Destination)
}
