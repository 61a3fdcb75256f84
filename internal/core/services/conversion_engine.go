package services

import (
	"fmt"
	"math"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	"github.com/SscSPs/miguelacho_api/internal/utils/numeric"
	"github.com/shopspring/decimal"
)

// ConvertedPlaces is the number of decimal places kept in a converted amount.
// Rounding is half away from zero (decimal.Round).
const ConvertedPlaces = 4

const ratesTable = "rates"

// Convert applies converted = amount * (destinationQuote / originQuote) * factor.
//
// The origin quote is read from "{ORIGIN}_O" and the destination quote from
// "{DESTINATION}_D" of rateRow. A missing quote column is ErrCurrencyNotFound;
// an empty, zero or unparsable quote is ErrRateOrFactorInvalid.
func Convert(amount decimal.Decimal, origin, destination string, rateRow domain.Record, factor decimal.Decimal, fields domain.RateTableFields) (*domain.ConversionResult, error) {
	origin = NormalizeCurrencyCode(origin)
	destination = NormalizeCurrencyCode(destination)

	if amount.IsZero() {
		return nil, apperrors.NewInvalidRequestError("cantidad must not be zero")
	}
	if origin == "" || destination == "" {
		return nil, apperrors.NewInvalidRequestError("origen and destino are required")
	}

	originQuote, err := quote(rateRow, origin, origin+"_O")
	if err != nil {
		return nil, err
	}
	destinationQuote, err := quote(rateRow, destination, destination+"_D")
	if err != nil {
		return nil, err
	}

	// Multiply before dividing so the only inexact step is the final division.
	converted := amount.Mul(destinationQuote).Mul(factor).Div(originQuote).Round(ConvertedPlaces)
	if f := converted.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("%w: converted amount %s is not representable", apperrors.ErrInternal, converted.String())
	}

	result := &domain.ConversionResult{
		Amount:      amount,
		Origin:      origin,
		Destination: destination,
		Converted:   converted,
		Factor:      factor,
	}
	if fields.IDField != "" {
		result.RateID, _ = rateRow.Lookup(fields.IDField)
	}
	if fields.TimestampField != "" {
		result.RateTimestamp, _ = rateRow.Lookup(fields.TimestampField)
	}
	return result, nil
}

func quote(rateRow domain.Record, code, key string) (decimal.Decimal, error) {
	raw, ok := rateRow.Lookup(key)
	if !ok {
		return decimal.Zero, apperrors.NewCurrencyNotFoundError(code, ratesTable)
	}
	return numeric.ParseRate(key, raw)
}
