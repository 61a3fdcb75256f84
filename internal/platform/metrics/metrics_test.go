package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ConversionsTotal.WithLabelValues("ok").Inc()
	m.ConversionsTotal.WithLabelValues("ok").Inc()
	m.GatewayFetchTotal.WithLabelValues("Mercado", "ok").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayFetchTotal.WithLabelValues("Mercado", "ok")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	// A second registry must accept a fresh set without duplicate registration panics.
	assert.NotPanics(t, func() { NewMetrics(prometheus.NewRegistry()) })
}
