package sheets

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/miguelacho_api/internal/core/ports/repositories"
	"github.com/SscSPs/miguelacho_api/internal/platform/config"
	"github.com/SscSPs/miguelacho_api/internal/platform/metrics"
)

// NewGatewayFromConfig builds the gateway selected by cfg.DataSource, wrapped in a ResilientGateway.
func NewGatewayFromConfig(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (portsrepo.SheetGateway, error) {
	var base portsrepo.SheetGateway

	switch cfg.DataSource {
	case config.DataSourceGoogle:
		gw, err := NewGoogleSheetsGateway(ctx, cfg.GoogleCredentialsPath, cfg.SpreadsheetID)
		if err != nil {
			return nil, err
		}
		base = gw
	case config.DataSourceXLSX:
		base = NewXLSXGateway(cfg.XLSXPath)
	default:
		return nil, fmt.Errorf("unsupported data source '%s'", cfg.DataSource)
	}

	logger.Info("Spreadsheet gateway configured",
		slog.String("data_source", cfg.DataSource),
		slog.Duration("timeout", cfg.GatewayTimeout),
		slog.Int("max_retries", cfg.GatewayMaxRetries),
	)

	return NewResilientGateway(base,
		WithTimeout(cfg.GatewayTimeout),
		WithMaxRetries(cfg.GatewayMaxRetries),
		WithMetrics(m),
		WithLogger(logger),
	), nil
}
