// Package metrics provides Prometheus observability for the auth lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. A nil *Metrics is
// valid and records nothing, so instrumentation points never need guards.
type Metrics struct {
	// Successful logins through the authorization gate
	Logins prometheus.Counter

	// Denied authorization checks by reason
	AuthDenied *prometheus.CounterVec

	// Revocation attempts by outcome
	Revocations *prometheus.CounterVec

	// Credential store lookups that found no usable record
	CacheMisses prometheus.Counter
}

// New creates and registers all metrics on the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics registered on the given registerer.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Logins: factory.NewCounter(prometheus.CounterOpts{
			Name: "authgate_logins_total",
			Help: "Total successful logins through the authorization gate",
		}),

		AuthDenied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "authgate_auth_denied_total",
			Help: "Total denied authorization checks by reason",
		}, []string{"reason"}), // reason: "not_logged_in", "forbidden_domain", "provider_error"

		Revocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "authgate_revocations_total",
			Help: "Total revocation attempts by outcome",
		}, []string{"outcome"}), // outcome: "ok", "rejected", "failed"

		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "authgate_credential_cache_misses_total",
			Help: "Total credential store lookups that found no usable record",
		}),
	}
}

// IncrementLogins records a successful login.
func (m *Metrics) IncrementLogins() {
	if m != nil {
		m.Logins.Inc()
	}
}

// IncrementAuthDenied records a denied authorization check.
func (m *Metrics) IncrementAuthDenied(reason string) {
	if m != nil {
		m.AuthDenied.WithLabelValues(reason).Inc()
	}
}

// IncrementRevocations records a revocation attempt outcome.
func (m *Metrics) IncrementRevocations(outcome string) {
	if m != nil {
		m.Revocations.WithLabelValues(outcome).Inc()
	}
}

// IncrementCacheMisses records a credential store miss.
func (m *Metrics) IncrementCacheMisses() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}
