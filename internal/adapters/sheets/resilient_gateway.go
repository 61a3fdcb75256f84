package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/SscSPs/miguelacho_api/internal/apperrors"
	"github.com/SscSPs/miguelacho_api/internal/core/domain"
	portsrepo "github.com/SscSPs/miguelacho_api/internal/core/ports/repositories"
	"github.com/SscSPs/miguelacho_api/internal/platform/metrics"
	"google.golang.org/api/googleapi"
)

// ResilientGateway bounds every fetch with a timeout and retries transient
// failures at most maxRetries times. Whatever goes wrong, callers get a single
// apperrors.ErrGatewayUnavailable.
type ResilientGateway struct {
	next       portsrepo.SheetGateway
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// ResilientOption configures a ResilientGateway.
type ResilientOption func(*ResilientGateway)

// WithTimeout bounds each attempt. Zero disables the bound.
func WithTimeout(d time.Duration) ResilientOption {
	return func(g *ResilientGateway) { g.timeout = d }
}

// WithMaxRetries sets how many times a transient failure is retried.
func WithMaxRetries(n int) ResilientOption {
	return func(g *ResilientGateway) { g.maxRetries = n }
}

// WithRetryDelay sets the pause before a retry.
func WithRetryDelay(d time.Duration) ResilientOption {
	return func(g *ResilientGateway) { g.retryDelay = d }
}

// WithMetrics records fetch outcomes and latency.
func WithMetrics(m *metrics.Metrics) ResilientOption {
	return func(g *ResilientGateway) { g.metrics = m }
}

// WithLogger sets the logger used for retries and failures.
func WithLogger(l *slog.Logger) ResilientOption {
	return func(g *ResilientGateway) { g.logger = l }
}

// NewResilientGateway wraps next. Defaults: 10s per attempt, one retry after 200ms.
func NewResilientGateway(next portsrepo.SheetGateway, opts ...ResilientOption) *ResilientGateway {
	g := &ResilientGateway{
		next:       next,
		timeout:    10 * time.Second,
		maxRetries: 1,
		retryDelay: 200 * time.Millisecond,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.maxRetries < 0 {
		g.maxRetries = 0
	}
	return g
}

// FetchRange fetches through the wrapped gateway.
func (g *ResilientGateway) FetchRange(ctx context.Context, sheetName, cellRange string) (domain.RawGrid, error) {
	start := time.Now()
	logger := g.logger.With(slog.String("sheet", sheetName), slog.String("range", cellRange))

	var err error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn("Retrying spreadsheet fetch after transient failure", slog.String("error", err.Error()))
			if g.metrics != nil {
				g.metrics.GatewayRetriesTotal.WithLabelValues(sheetName).Inc()
			}
			if werr := sleepCtx(ctx, g.retryDelay); werr != nil {
				break
			}
		}

		var grid domain.RawGrid
		grid, err = g.fetchOnce(ctx, sheetName, cellRange)
		if err == nil {
			g.observe(sheetName, "ok", start)
			return grid, nil
		}
		if ctx.Err() != nil || !IsTransient(err) {
			break
		}
	}

	g.observe(sheetName, "error", start)
	logger.Error("Spreadsheet fetch failed", slog.String("error", err.Error()))
	return nil, apperrors.NewGatewayUnavailableError(fmt.Errorf("fetch %s: %w", domain.SheetRange{Sheet: sheetName, Range: cellRange}, err))
}

func (g *ResilientGateway) fetchOnce(ctx context.Context, sheetName, cellRange string) (domain.RawGrid, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.next.FetchRange(ctx, sheetName, cellRange)
}

func (g *ResilientGateway) observe(sheetName, outcome string, start time.Time) {
	if g.metrics == nil {
		return
	}
	g.metrics.GatewayFetchTotal.WithLabelValues(sheetName, outcome).Inc()
	g.metrics.GatewayFetchDuration.WithLabelValues(sheetName).Observe(time.Since(start).Seconds())
}

// IsTransient reports whether err is worth one more attempt: timeouts, network
// errors, truncated responses and Google API 429/5xx answers.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ portsrepo.SheetGateway = (*ResilientGateway)(nil)
