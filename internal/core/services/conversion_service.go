package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	portsrepo "github.com/SscSPs/miguelacho_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/miguelacho_api/internal/core/ports/services"
	"github.com/SscSPs/miguelacho_api/internal/dto"
	"github.com/SscSPs/miguelacho_api/internal/utils/numeric"
)

// ConversionService converts amounts using the spreadsheet tables.
type ConversionService struct {
	BaseService
	tables portsrepo.TableReader
	fields domain.RateTableFields
}

// NewConversionService creates a new ConversionService.
func NewConversionService(tables portsrepo.TableReader, fields domain.RateTableFields) *ConversionService {
	return &ConversionService{
		tables: tables,
		fields: fields,
	}
}

// Convert validates req, resolves the latest rate row and the profit factor, and
// runs the conversion. No result is produced unless both tables were obtained.
func (s *ConversionService) Convert(ctx context.Context, req dto.ConvertRequest) (*domain.ConversionResult, error) {
	amount, err := numeric.ParseAmount(req.Cantidad)
	if err != nil {
		return nil, err
	}
	origin := NormalizeCurrencyCode(req.Origen)
	destination := NormalizeCurrencyCode(req.Destino)
	if origin == "" || destination == "" {
		return nil, apperrors.NewInvalidRequestError("origen and destino are required")
	}

	tables, err := s.tables.Get(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrDataNotReady) {
			s.LogWarn(ctx, err, "Tables not ready for conversion")
		} else {
			s.LogError(ctx, err, "Failed to obtain tables for conversion")
		}
		return nil, err
	}

	rateRow, err := ResolveLatestRate(tables.Rates, s.fields.IDField)
	if err != nil {
		return nil, err
	}

	factor, err := ResolveProfitFactor(tables.Profit, origin, destination)
	if err != nil {
		s.LogWarn(ctx, err, "Profit factor not resolved",
			slog.String("origin", origin), slog.String("destination", destination))
		return nil, err
	}

	result, err := Convert(amount, origin, destination, rateRow, factor, s.fields)
	if err != nil {
		s.LogWarn(ctx, err, "Conversion rejected",
			slog.String("origin", origin), slog.String("destination", destination))
		return nil, err
	}

	s.LogDebug(ctx, "Conversion computed",
		slog.String("request", result.Description()),
		slog.String("converted", result.Converted.String()),
		slog.String("factor", result.Factor.String()),
		slog.String("rate_id", result.RateID),
	)
	return result, nil
}

var _ portssvc.ConversionSvc = (*ConversionService)(nil)
