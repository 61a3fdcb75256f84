package services

import (
	"fmt"
	"strings"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	"github.com/SscSPs/miguelacho_api/internal/utils/numeric"
	"github.com/shopspring/decimal"
)

const profitTable = "profit"

// ResolveProfitFactor returns the markup for origin→destination.
//
// A code missing from the matrix is ErrCurrencyNotFound: the factor is undefined,
// which is not the same as zero. A cell that exists but is empty, zero or not a
// number yields numeric.NeutralFactor, meaning no markup is configured.
func ResolveProfitFactor(m domain.ProfitMatrix, origin, destination string) (decimal.Decimal, error) {
	origin = NormalizeCurrencyCode(origin)
	destination = NormalizeCurrencyCode(destination)

	switch m.Layout {
	case domain.MatrixLayoutGrid:
		return resolveGridFactor(m.Grid, origin, destination)
	case domain.MatrixLayoutRecords:
		return resolveRecordFactor(m.Records, m.KeyField, origin, destination)
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown profit matrix layout '%s'", apperrors.ErrInternal, m.Layout)
	}
}

// resolveGridFactor reads grid[destination row][origin column]. Row 0 carries the
// origin codes from column 1 on; column 0 carries the destination codes from row 1 on.
func resolveGridFactor(grid domain.RawGrid, origin, destination string) (decimal.Decimal, error) {
	if len(grid) == 0 {
		return decimal.Zero, apperrors.NewCurrencyNotFoundError(origin, profitTable)
	}

	col := -1
	for j := 1; j < len(grid[0]); j++ {
		if NormalizeCurrencyCode(grid[0][j]) == origin {
			col = j
			break
		}
	}
	if col < 0 {
		return decimal.Zero, apperrors.NewCurrencyNotFoundError(origin, profitTable)
	}

	for i := 1; i < len(grid); i++ {
		if NormalizeCurrencyCode(grid.Cell(i, 0)) == destination {
			return numeric.ParseFactor(grid.Cell(i, col)), nil
		}
	}
	return decimal.Zero, apperrors.NewCurrencyNotFoundError(destination, profitTable)
}

// resolveRecordFactor finds the record whose keyField equals origin and reads its
// destination field. An empty keyField means the first field of each record.
func resolveRecordFactor(records []domain.Record, keyField, origin, destination string) (decimal.Decimal, error) {
	for _, rec := range records {
		key := keyField
		if key == "" {
			keys := rec.Keys()
			if len(keys) == 0 {
				continue
			}
			key = keys[0]
		}
		code, _ := rec.Lookup(key)
		if NormalizeCurrencyCode(code) != origin {
			continue
		}

		for _, field := range rec.Keys() {
			if field == key {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(field), destination) {
				return numeric.ParseFactor(rec.Value(field)), nil
			}
		}
		return decimal.Zero, apperrors.NewCurrencyNotFoundError(destination, profitTable)
	}
	return decimal.Zero, apperrors.NewCurrencyNotFoundError(origin, profitTable)
}
