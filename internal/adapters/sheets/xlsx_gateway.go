package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	portsrepo "github.com/SscSPs/miguelacho_api/internal/core/ports/repositories"
	"github.com/xuri/excelize/v2"
)

// XLSXGateway reads ranges from a local workbook with the same layout as the
// production spreadsheet. The file is reopened on every fetch so edits are picked up.
type XLSXGateway struct {
	path string
}

// NewXLSXGateway creates a gateway over the workbook at path.
func NewXLSXGateway(path string) *XLSXGateway {
	return &XLSXGateway{path: path}
}

// FetchRange returns the cells of sheetName inside cellRange (A1 notation).
// Trailing empty rows are dropped, as the Sheets API does.
func (g *XLSXGateway) FetchRange(ctx context.Context, sheetName, cellRange string) (domain.RawGrid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	firstCol, firstRow, lastCol, lastRow, err := parseA1Range(cellRange)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(g.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook '%s': %w", g.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet '%s': %w", sheetName, err)
	}

	grid := domain.RawGrid{}
	for r := firstRow; r <= lastRow && r <= len(rows); r++ {
		row := rows[r-1]
		cells := []string{}
		for c := firstCol; c <= lastCol && c <= len(row); c++ {
			cells = append(cells, row[c-1])
		}
		grid = append(grid, trimTrailingEmpty(cells))
	}
	for len(grid) > 0 && len(grid[len(grid)-1]) == 0 {
		grid = grid[:len(grid)-1]
	}
	return grid, nil
}

// parseA1Range returns 1-based inclusive bounds of ranges such as "B1:L12" or "C3".
func parseA1Range(cellRange string) (firstCol, firstRow, lastCol, lastRow int, err error) {
	parts := strings.Split(strings.TrimSpace(cellRange), ":")
	if len(parts) > 2 || parts[0] == "" {
		return 0, 0, 0, 0, fmt.Errorf("invalid cell range '%s'", cellRange)
	}

	firstCol, firstRow, err = excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid cell range '%s': %w", cellRange, err)
	}
	lastCol, lastRow = firstCol, firstRow
	if len(parts) == 2 {
		lastCol, lastRow, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("invalid cell range '%s': %w", cellRange, err)
		}
	}

	if lastCol < firstCol {
		firstCol, lastCol = lastCol, firstCol
	}
	if lastRow < firstRow {
		firstRow, lastRow = lastRow, firstRow
	}
	return firstCol, firstRow, lastCol, lastRow, nil
}

func trimTrailingEmpty(cells []string) []string {
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

var _ portsrepo.SheetGateway = (*XLSXGateway)(nil)
