package observability_test

import (
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.ObserveAssigned()
	m.ObserveAssigned()
	m.ObserveReused()
	m.ObserveFailure(observability.ReasonSource)
	m.SessionOpened()
	m.ObserveRequest("/freeze", "200", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Assigned))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reused))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues(observability.ReasonSource)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Sessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/freeze", "200")))

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.ObserveAssigned()
		m.ObserveReused()
		m.ObserveFailure(observability.ReasonUnhashable)
		m.SessionOpened()
		m.SessionClosed()
		m.ObserveRequest("/", "200", time.Second)
	})
}
