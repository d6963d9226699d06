package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/ont/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	m := metrics.NewMetrics(reg)

	require.NotNil(t, m)
	assert.InDelta(t, 0, testutil.ToFloat64(m.Enforcements.WithLabelValues("created")), 0)

	m.Enforcements.WithLabelValues("modified").Inc()
	assert.InDelta(t, 1, testutil.ToFloat64(m.Enforcements.WithLabelValues("modified")), 0)

	// the outcome series are pre-initialised so they are scraped from the first run
	count, err := testutil.GatherAndCount(reg, "ont_schema_enforcements_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNewMetrics_DoubleRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_ = metrics.NewMetrics(reg)

	assert.Panics(t, func() {
		metrics.NewMetrics(reg)
	})
}
