package tables

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	portsrepo "github.com/SscSPs/miguelacho_api/internal/core/ports/repositories"
	"github.com/SscSPs/miguelacho_api/internal/utils/tabular"
	"golang.org/x/sync/errgroup"
)

// LoaderConfig describes where the tables live and how they are shaped.
type LoaderConfig struct {
	RatesRange     domain.SheetRange
	ProfitRange    domain.SheetRange
	DropBlankRates bool
	ProfitLayout   domain.MatrixLayout
	ProfitKeyField string
}

// SheetLoader fetches both tables through a SheetGateway.
type SheetLoader struct {
	gateway portsrepo.SheetGateway
	cfg     LoaderConfig
	now     func() time.Time
}

// NewSheetLoader creates a loader reading through gateway.
func NewSheetLoader(gateway portsrepo.SheetGateway, cfg LoaderConfig) *SheetLoader {
	if cfg.ProfitLayout == "" {
		cfg.ProfitLayout = domain.MatrixLayoutGrid
	}
	return &SheetLoader{gateway: gateway, cfg: cfg, now: time.Now}
}

// Load fetches the rates and profit ranges concurrently. Either both tables are
// returned or neither is; an empty table is ErrDataNotReady.
func (l *SheetLoader) Load(ctx context.Context) (*domain.Tables, error) {
	var ratesGrid, profitGrid domain.RawGrid

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		grid, err := l.gateway.FetchRange(gctx, l.cfg.RatesRange.Sheet, l.cfg.RatesRange.Range)
		if err != nil {
			return err
		}
		ratesGrid = grid
		return nil
	})
	g.Go(func() error {
		grid, err := l.gateway.FetchRange(gctx, l.cfg.ProfitRange.Sheet, l.cfg.ProfitRange.Range)
		if err != nil {
			return err
		}
		profitGrid = grid
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.NewGatewayUnavailableError(err)
	}

	var opts []tabular.Option
	if l.cfg.DropBlankRates {
		opts = append(opts, tabular.DropBlankRecords())
	}
	rates := tabular.Normalize(ratesGrid, opts...)
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: %s has no rate rows", apperrors.ErrDataNotReady, l.cfg.RatesRange)
	}

	profit := domain.ProfitMatrix{Layout: l.cfg.ProfitLayout, KeyField: l.cfg.ProfitKeyField}
	switch l.cfg.ProfitLayout {
	case domain.MatrixLayoutGrid:
		profit.Grid = profitGrid
	case domain.MatrixLayoutRecords:
		profit.Records = tabular.Normalize(profitGrid, tabular.DropBlankRecords())
	default:
		return nil, fmt.Errorf("%w: unknown profit matrix layout '%s'", apperrors.ErrInternal, l.cfg.ProfitLayout)
	}
	if profit.IsEmpty() {
		return nil, fmt.Errorf("%w: %s has no profit rows", apperrors.ErrDataNotReady, l.cfg.ProfitRange)
	}

	return &domain.Tables{
		Rates:      rates,
		ProfitGrid: profitGrid,
		Profit:     profit,
		FetchedAt:  l.now().UTC(),
	}, nil
}

var _ portsrepo.TableLoader = (*SheetLoader)(nil)
