package services

import (
	"fmt"
	"strings"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	"github.com/SscSPs/miguelacho_api/internal/utils/numeric"
	"github.com/shopspring/decimal"
)

// NormalizeCurrencyCode trims and upper-cases a currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ResolveLatestRate picks the logically latest row of the rates table.
//
// Rows whose idField parses as a number compete on that number and the largest
// wins; on equal identifiers the later row wins. When no row carries a parseable
// identifier the last row in sequence order is used, which is only equivalent for
// append-only tables.
func ResolveLatestRate(records []domain.Record, idField string) (domain.Record, error) {
	if len(records) == 0 {
		return domain.Record{}, fmt.Errorf("%w: rates table has no rows", apperrors.ErrDataNotReady)
	}

	latest := -1
	var latestID decimal.Decimal
	if idField != "" {
		for i, rec := range records {
			raw, ok := rec.Lookup(idField)
			if !ok {
				continue
			}
			id, err := numeric.ParseDecimal(raw)
			if err != nil {
				continue
			}
			if latest < 0 || id.GreaterThanOrEqual(latestID) {
				latest = i
				latestID = id
			}
		}
	}

	if latest < 0 {
		return records[len(records)-1], nil
	}
	return records[latest], nil
}
