package domain

import "fmt"

// MatrixLayout selects how the profit sheet is read.
type MatrixLayout string

const (
	// MatrixLayoutGrid reads the sheet as a raw grid: origin codes across row 0,
	// destination codes down column 0.
	MatrixLayoutGrid MatrixLayout = "grid"
	// MatrixLayoutRecords reads the sheet as records keyed by origin code with
	// one field per destination code.
	MatrixLayoutRecords MatrixLayout = "records"
)

// ParseMatrixLayout validates a configured layout name.
func ParseMatrixLayout(s string) (MatrixLayout, error) {
	switch MatrixLayout(s) {
	case MatrixLayoutGrid, MatrixLayoutRecords:
		return MatrixLayout(s), nil
	default:
		return "", fmt.Errorf("unknown profit matrix layout '%s' (expected grid or records)", s)
	}
}

// ProfitMatrix is the profit-factor table in one of its two layouts.
// Only the field matching Layout is populated.
type ProfitMatrix struct {
	Layout   MatrixLayout
	Grid     RawGrid
	Records  []Record
	KeyField string // records layout only; "" means the first field of each record
}

// IsEmpty reports whether the matrix holds no data rows.
func (m ProfitMatrix) IsEmpty() bool {
	switch m.Layout {
	case MatrixLayoutGrid:
		return len(m.Grid) < 2
	case MatrixLayoutRecords:
		return len(m.Records) == 0
	default:
		return true
	}
}
