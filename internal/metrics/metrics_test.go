package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Updates.WithLabelValues("command").Inc()
	m.Updates.WithLabelValues("command").Inc()
	m.PlacesSaved.Inc()

	assert.InDelta(t, 2, testutil.ToFloat64(m.Updates.WithLabelValues("command")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.PlacesSaved), 0.001)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewMetrics_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	assert.Panics(t, func() { NewMetrics(reg) })
}
