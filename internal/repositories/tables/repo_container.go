package tables

import (
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/miguelacho_api/internal/core/ports/repositories"
	"github.com/SscSPs/miguelacho_api/internal/platform/config"
	"github.com/SscSPs/miguelacho_api/internal/platform/metrics"
)

// NewTableRepositoryFromConfig builds the table store selected by cfg.FetchPolicy.
// The returned cache is nil unless the policy is startup; callers use it to
// prime the snapshot and run periodic refreshes.
func NewTableRepositoryFromConfig(cfg *config.Config, gateway portsrepo.SheetGateway, m *metrics.Metrics, logger *slog.Logger) (portsrepo.TableRepositoryFacade, *CachedTableStore, error) {
	loader := NewSheetLoader(gateway, LoaderConfig{
		RatesRange:     cfg.RatesRange,
		ProfitRange:    cfg.ProfitRange,
		DropBlankRates: cfg.RatesDropBlankRows,
		ProfitLayout:   cfg.ProfitMatrixLayout,
		ProfitKeyField: cfg.ProfitMatrixKeyField,
	})

	switch cfg.FetchPolicy {
	case config.FetchPolicyStartup:
		store := NewCachedTableStore(loader, m, logger)
		return store, store, nil
	case config.FetchPolicyPerRequest:
		return NewOnDemandTableStore(loader, m), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported fetch policy '%s'", cfg.FetchPolicy)
	}
}
