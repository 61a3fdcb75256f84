package tables

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	portsrepo "github.com/SscSPs/miguelacho_api/internal/core/ports/repositories"
	"github.com/SscSPs/miguelacho_api/internal/platform/metrics"
)

// CachedTableStore serves the last successfully loaded snapshot.
// Readers never see a half-replaced snapshot: a refresh swaps the whole pointer.
type CachedTableStore struct {
	loader   portsrepo.TableLoader
	metrics  *metrics.Metrics
	logger   *slog.Logger
	snapshot atomic.Pointer[domain.Tables]
	mu       sync.Mutex // serializes refreshes
}

// NewCachedTableStore creates an empty store. Get fails with ErrDataNotReady until the first Refresh succeeds.
func NewCachedTableStore(loader portsrepo.TableLoader, m *metrics.Metrics, logger *slog.Logger) *CachedTableStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedTableStore{loader: loader, metrics: m, logger: logger}
}

// Get returns the current snapshot.
func (s *CachedTableStore) Get(ctx context.Context) (*domain.Tables, error) {
	t := s.snapshot.Load()
	if t == nil {
		return nil, apperrors.ErrDataNotReady
	}
	return t, nil
}

// Refresh loads a new snapshot and returns it. On failure the previous snapshot keeps being served.
func (s *CachedTableStore) Refresh(ctx context.Context) (*domain.Tables, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.loader.Load(ctx)
	if err != nil {
		s.observe("error")
		s.logger.Warn("Table refresh failed, keeping previous snapshot",
			slog.String("error", err.Error()),
			slog.Bool("has_snapshot", s.snapshot.Load() != nil),
		)
		return nil, err
	}

	s.snapshot.Store(t)
	s.observe("ok")
	if s.metrics != nil {
		s.metrics.TableSnapshotLoaded.Set(float64(t.FetchedAt.Unix()))
	}
	s.logger.Info("Table snapshot loaded",
		slog.Int("rate_rows", len(t.Rates)),
		slog.Int("profit_rows", t.Summary().ProfitRows),
		slog.Time("fetched_at", t.FetchedAt),
	)
	return t, nil
}

// Run refreshes the snapshot every interval until ctx is done.
func (s *CachedTableStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.Refresh(ctx) // failures are logged and the old snapshot stays
		}
	}
}

func (s *CachedTableStore) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.TableRefreshTotal.WithLabelValues(outcome).Inc()
	}
}

var _ portsrepo.TableRepositoryFacade = (*CachedTableStore)(nil)
