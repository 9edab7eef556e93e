// Package metrics содержит счётчики Prometheus сервиса авторизации.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки result и decision.
const (
	ResultSuccess            = "success"
	ResultConflict           = "conflict"
	ResultBadRequest         = "bad_request"
	ResultInvalidCredentials = "invalid_credentials"
	ResultError              = "error"

	DecisionAllowed      = "allowed"
	DecisionUnauthorized = "unauthorized"
	DecisionForbidden    = "forbidden"
)

// Metrics набор счётчиков сервиса. Методы безопасно вызывать на nil.
type Metrics struct {
	Registrations *prometheus.CounterVec
	Logins        *prometheus.CounterVec
	GateDecisions *prometheus.CounterVec
}

// New регистрирует счётчики в reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auth",
			Name:      "registrations_total",
			Help:      "Number of registration attempts by result.",
		}, []string{"result"}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auth",
			Name:      "logins_total",
			Help:      "Number of login attempts by result.",
		}, []string{"result"}),
		GateDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auth",
			Name:      "gate_decisions_total",
			Help:      "Number of access decisions made by the auth gate.",
		}, []string{"decision"}),
	}
}

// IncRegistration увеличивает счётчик регистраций.
func (m *Metrics) IncRegistration(result string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(result).Inc()
}

// IncLogin увеличивает счётчик входов.
func (m *Metrics) IncLogin(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}

// IncGateDecision увеличивает счётчик решений гейта.
func (m *Metrics) IncGateDecision(decision string) {
	if m == nil {
		return
	}
	m.GateDecisions.WithLabelValues(decision).Inc()
}
