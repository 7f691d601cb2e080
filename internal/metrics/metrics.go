// Package metrics defines the Prometheus collectors exported by the
// identity backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for auth attempts.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics groups the backend's collectors. A nil *Metrics records nothing.
type Metrics struct {
	authAttempts *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
	logouts      prometheus.Counter
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		authAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "authgate",
			Name:      "auth_attempts_total",
			Help:      "Register and login attempts by operation and outcome.",
		}, []string{"operation", "outcome"}),
		rpcDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "authgate",
			Name:      "rpc_duration_seconds",
			Help:      "Duration of Connect RPCs by procedure and code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		logouts: f.NewCounter(prometheus.CounterOpts{
			Namespace: "authgate",
			Name:      "logouts_total",
			Help:      "Sessions revoked by logout.",
		}),
	}
}

// AuthAttempt counts one register or login attempt.
func (m *Metrics) AuthAttempt(operation, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(operation, outcome).Inc()
}

// Logout counts one revoked session.
func (m *Metrics) Logout() {
	if m == nil {
		return
	}
	m.logouts.Inc()
}

// ObserveRPC records how long a procedure took.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(procedure, code).Observe(d.Seconds())
}
