package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Conversions by outcome (ok, currency_not_found, ...)
	ConversionsTotal *prometheus.CounterVec

	// Spreadsheet gateway
	GatewayFetchTotal    *prometheus.CounterVec
	GatewayFetchDuration *prometheus.HistogramVec
	GatewayRetriesTotal  *prometheus.CounterVec

	// Table cache
	TableRefreshTotal   *prometheus.CounterVec
	TableSnapshotLoaded prometheus.Gauge
}

// NewMetrics registers all collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversions_total",
				Help: "Conversion requests by outcome",
			},
			[]string{"outcome"},
		),
		GatewayFetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sheets_fetch_total",
				Help: "Spreadsheet range fetches by sheet and outcome",
			},
			[]string{"sheet", "outcome"},
		),
		GatewayFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sheets_fetch_duration_seconds",
				Help:    "Spreadsheet range fetch latency in seconds, retries included",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms, 100ms, 200ms...
			},
			[]string{"sheet"},
		),
		GatewayRetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sheets_fetch_retries_total",
				Help: "Retried spreadsheet fetches after a transient failure",
			},
			[]string{"sheet"},
		),
		TableRefreshTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "table_refresh_total",
				Help: "Table cache refreshes by outcome",
			},
			[]string{"outcome"},
		),
		TableSnapshotLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "table_snapshot_loaded_timestamp_seconds",
				Help: "Unix time of the table snapshot currently served",
			},
		),
	}
}
