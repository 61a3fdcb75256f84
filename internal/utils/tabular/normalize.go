// Package tabular shapes raw spreadsheet ranges into header-keyed records.
package tabular

import (
	"fmt"
	"strings"

	"github.com/SscSPs/miguelacho_api/internal/core/domain"
)

type options struct {
	dropBlank bool
}

// Option tunes Normalize.
type Option func(*options)

// DropBlankRecords removes records whose every field is empty.
// It changes the number of records returned, so callers opt in explicitly.
func DropBlankRecords() Option {
	return func(o *options) { o.dropBlank = true }
}

// Headers returns the trimmed header row of grid. Empty headers are named
// Column{i}, or Column{i}_{n} when a real header already uses that name.
func Headers(grid domain.RawGrid) []string {
	if len(grid) == 0 {
		return nil
	}
	headers := make([]string, len(grid[0]))
	taken := make(map[string]bool, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] != "" {
			taken[headers[i]] = true
		}
	}
	for i, h := range headers {
		if h != "" {
			continue
		}
		name := fmt.Sprintf("Column%d", i)
		for n := 1; taken[name]; n++ {
			name = fmt.Sprintf("Column%d_%d", i, n)
		}
		taken[name] = true
		headers[i] = name
	}
	return headers
}

// Normalize turns grid into one record per data row, using row 0 as headers.
// A grid with fewer than two rows yields an empty slice. Cells missing from a
// short row map to "". Normalize never fails.
func Normalize(grid domain.RawGrid, opts ...Option) []domain.Record {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if len(grid) < 2 {
		return []domain.Record{}
	}

	headers := Headers(grid)
	records := make([]domain.Record, 0, len(grid)-1)
	for _, row := range grid[1:] {
		rec := domain.NewRecord(len(headers))
		for j, h := range headers {
			value := ""
			if j < len(row) {
				value = row[j]
			}
			rec.Set(h, value)
		}
		if o.dropBlank && rec.IsBlank() {
			continue
		}
		records = append(records, rec)
	}
	return records
}
