package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncRegistration(ResultSuccess)
	m.IncRegistration(ResultSuccess)
	m.IncRegistration(ResultConflict)
	m.IncLogin(ResultInvalidCredentials)
	m.IncGateDecision(DecisionForbidden)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Registrations.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations.WithLabelValues(ResultConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues(ResultInvalidCredentials)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GateDecisions.WithLabelValues(DecisionForbidden)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.GateDecisions.WithLabelValues(DecisionAllowed)))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncRegistration(ResultSuccess)
		m.IncLogin(ResultSuccess)
		m.IncGateDecision(DecisionAllowed)
	})
}
