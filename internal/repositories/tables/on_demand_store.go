package tables

import (
	"context"

	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	portsrepo "github.com/SscSPs/miguelacho_api/internal/core/ports/repositories"
	"github.com/SscSPs/miguelacho_api/internal/platform/metrics"
)

// OnDemandTableStore loads fresh tables for every request.
type OnDemandTableStore struct {
	loader  portsrepo.TableLoader
	metrics *metrics.Metrics
}

// NewOnDemandTableStore creates a store that never caches.
func NewOnDemandTableStore(loader portsrepo.TableLoader, m *metrics.Metrics) *OnDemandTableStore {
	return &OnDemandTableStore{loader: loader, metrics: m}
}

// Get loads both tables now.
func (s *OnDemandTableStore) Get(ctx context.Context) (*domain.Tables, error) {
	t, err := s.loader.Load(ctx)
	if s.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		s.metrics.TableRefreshTotal.WithLabelValues(outcome).Inc()
	}
	return t, err
}

// Refresh loads the tables once and hands them back. Nothing is kept.
func (s *OnDemandTableStore) Refresh(ctx context.Context) (*domain.Tables, error) {
	return s.Get(ctx)
}

var _ portsrepo.TableRepositoryFacade = (*OnDemandTableStore)(nil)
