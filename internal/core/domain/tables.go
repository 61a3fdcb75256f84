package domain

import "time"

// SheetRange names a range inside the spreadsheet, e.g. Mercado!A1:M1000.
type SheetRange struct {
	Sheet string
	Range string
}

// String returns the A1 notation used by the Sheets API.
func (r SheetRange) String() string {
	return r.Sheet + "!" + r.Range
}

// RateTableFields names the bookkeeping columns of the rates table.
type RateTableFields struct {
	IDField        string
	TimestampField string
}

// Tables is one consistent snapshot of both spreadsheet tables.
type Tables struct {
	Rates      []Record
	ProfitGrid RawGrid
	Profit     ProfitMatrix
	FetchedAt  time.Time
}

// TablesSummary describes a snapshot without its contents.
type TablesSummary struct {
	RateRows   int
	ProfitRows int
	FetchedAt  time.Time
}

// Summary returns the row counts and fetch time of t.
func (t *Tables) Summary() TablesSummary {
	profitRows := 0
	if len(t.ProfitGrid) > 0 {
		profitRows = len(t.ProfitGrid) - 1
	}
	return TablesSummary{
		RateRows:   len(t.Rates),
		ProfitRows: profitRows,
		FetchedAt:  t.FetchedAt,
	}
}
