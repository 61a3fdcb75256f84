package services

import (
	"context"

	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	"github.com/SscSPs/miguelacho_api/internal/dto"
)

// ConversionSvc defines currency conversion operations.
type ConversionSvc interface {
	// Convert converts the requested amount using the latest rates and the profit matrix.
	Convert(ctx context.Context, req dto.ConvertRequest) (*domain.ConversionResult, error)
}

// TableReaderSvc exposes the normalized tables to clients.
type TableReaderSvc interface {
	// ListRates returns the normalized rates table.
	ListRates(ctx context.Context) ([]domain.Record, error)

	// ListProfits returns the profit sheet normalized into records.
	ListProfits(ctx context.Context) ([]domain.Record, error)

	// GetCrossMatrix returns the profit sheet as fetched.
	GetCrossMatrix(ctx context.Context) (domain.RawGrid, error)
}

// TableAdminSvc defines maintenance operations on the tables.
type TableAdminSvc interface {
	// Refresh reloads the tables and describes the new snapshot.
	Refresh(ctx context.Context) (*domain.TablesSummary, error)
}

// TableSvcFacade combines all table-related service interfaces.
type TableSvcFacade interface {
	TableReaderSvc
	TableAdminSvc
}
