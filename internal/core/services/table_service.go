package services

import (
	"context"

	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	portsrepo "github.com/SscSPs/miguelacho_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/miguelacho_api/internal/core/ports/services"
	"github.com/SscSPs/miguelacho_api/internal/utils/tabular"
)

// TableService exposes the tables behind the conversions.
type TableService struct {
	BaseService
	repo portsrepo.TableRepositoryFacade
}

// NewTableService creates a new TableService.
func NewTableService(repo portsrepo.TableRepositoryFacade) *TableService {
	return &TableService{repo: repo}
}

// ListRates returns the normalized rates table.
func (s *TableService) ListRates(ctx context.Context) ([]domain.Record, error) {
	tables, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return tables.Rates, nil
}

// ListProfits returns the profit sheet normalized into records, whatever the configured layout.
func (s *TableService) ListProfits(ctx context.Context) ([]domain.Record, error) {
	tables, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return tabular.Normalize(tables.ProfitGrid, tabular.DropBlankRecords()), nil
}

// GetCrossMatrix returns the profit sheet as fetched.
func (s *TableService) GetCrossMatrix(ctx context.Context) (domain.RawGrid, error) {
	tables, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return tables.ProfitGrid, nil
}

// Refresh reloads the tables and returns a summary of the new snapshot.
func (s *TableService) Refresh(ctx context.Context) (*domain.TablesSummary, error) {
	tables, err := s.repo.Refresh(ctx)
	if err != nil {
		s.LogError(ctx, err, "Table refresh failed")
		return nil, err
	}
	summary := tables.Summary()
	s.LogInfo(ctx, "Tables refreshed",
		"rate_rows", summary.RateRows,
		"profit_rows", summary.ProfitRows,
	)
	return &summary, nil
}

var _ portssvc.TableSvcFacade = (*TableService)(nil)
