package tables

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway serves fixed grids keyed by "Sheet!Range".
type fakeGateway struct {
	mu      sync.Mutex
	grids   map[string]domain.RawGrid
	errs    map[string]error
	calls   int
	fetched []string
}

func (f *fakeGateway) FetchRange(ctx context.Context, sheetName, cellRange string) (domain.RawGrid, error) {
	key := domain.SheetRange{Sheet: sheetName, Range: cellRange}.String()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.fetched = append(f.fetched, key)
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	return f.grids[key], nil
}

var (
	ratesRange  = domain.SheetRange{Sheet: "Mercado", Range: "A1:M1000"}
	profitRange = domain.SheetRange{Sheet: "miguelacho", Range: "B1:L12"}

	ratesGrid = domain.RawGrid{
		{"IDTAS", "TIMESTAMP", "USD_O", "COP_D"},
		{"1", "2024-05-01", "1", "3900"},
		{"", ""},
		{"2", "2024-05-02", "1", "4000"},
	}
	profitGrid = domain.RawGrid{
		{"", "USD", "COP"},
		{"USD", "", "0,97"},
		{"COP", "0,95", ""},
	}
)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		grids: map[string]domain.RawGrid{
			ratesRange.String():  ratesGrid,
			profitRange.String(): profitGrid,
		},
		errs: map[string]error{},
	}
}

func newLoader(gw *fakeGateway, layout domain.MatrixLayout) *SheetLoader {
	l := NewSheetLoader(gw, LoaderConfig{
		RatesRange:     ratesRange,
		ProfitRange:    profitRange,
		DropBlankRates: true,
		ProfitLayout:   layout,
	})
	l.now = func() time.Time { return time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC) }
	return l
}

func TestSheetLoader_LoadGridLayout(t *testing.T) {
	gw := newFakeGateway()

	tables, err := newLoader(gw, domain.MatrixLayoutGrid).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, tables.Rates, 2, "blank rate rows are dropped")
	assert.Equal(t, "2", tables.Rates[1].Value("IDTAS"))
	assert.Equal(t, profitGrid, tables.ProfitGrid)
	assert.Equal(t, domain.MatrixLayoutGrid, tables.Profit.Layout)
	assert.Equal(t, profitGrid, tables.Profit.Grid)
	assert.Equal(t, time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC), tables.FetchedAt)
	assert.ElementsMatch(t, []string{"Mercado!A1:M1000", "miguelacho!B1:L12"}, gw.fetched)
}

func TestSheetLoader_LoadRecordsLayout(t *testing.T) {
	gw := newFakeGateway()

	tables, err := newLoader(gw, domain.MatrixLayoutRecords).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, tables.Profit.Records, 2)
	assert.Equal(t, "COP", tables.Profit.Records[1].Value("Column0"))
	assert.Equal(t, "0,95", tables.Profit.Records[1].Value("USD"))
	assert.Nil(t, tables.Profit.Grid)
}

func TestSheetLoader_KeepsBlankRatesWhenConfigured(t *testing.T) {
	gw := newFakeGateway()
	l := NewSheetLoader(gw, LoaderConfig{RatesRange: ratesRange, ProfitRange: profitRange})

	tables, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, tables.Rates, 3)
	assert.Equal(t, domain.MatrixLayoutGrid, tables.Profit.Layout, "grid is the default layout")
}

func TestSheetLoader_GatewayFailureIsTotal(t *testing.T) {
	gw := newFakeGateway()
	gw.errs[profitRange.String()] = errors.New("connection reset")

	tables, err := newLoader(gw, domain.MatrixLayoutGrid).Load(context.Background())
	assert.Nil(t, tables)
	assert.ErrorIs(t, err, apperrors.ErrGatewayUnavailable)
}

func TestSheetLoader_EmptyTablesAreNotReady(t *testing.T) {
	gw := newFakeGateway()
	gw.grids[ratesRange.String()] = domain.RawGrid{{"IDTAS", "USD_O"}}

	_, err := newLoader(gw, domain.MatrixLayoutGrid).Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrDataNotReady)

	gw = newFakeGateway()
	gw.grids[profitRange.String()] = domain.RawGrid{{"", "USD"}}

	_, err = newLoader(gw, domain.MatrixLayoutGrid).Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrDataNotReady)
}

func TestSheetLoader_UnknownLayout(t *testing.T) {
	_, err := newLoader(newFakeGateway(), domain.MatrixLayout("sniff")).Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrInternal)
}
