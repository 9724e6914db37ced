package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Session metrics
	Logins         *prometheus.CounterVec
	ActiveSessions prometheus.Gauge

	// Access policy metrics
	AccessDenied *prometheus.CounterVec

	// Domain metrics
	StaffMutations  *prometheus.CounterVec
	EventsPublished *prometheus.CounterVec
	LowStockItems   prometheus.Gauge
	JobRuns         *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics on reg. Pass a
// fresh prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "logins_total",
			Help:      "Login attempts by outcome",
		}, []string{"outcome"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Sessions opened and not yet logged out by this process",
		}),
		AccessDenied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "policy",
			Name:      "access_denied_total",
			Help:      "Module access checks that were denied",
		}, []string{"role", "module"}),
		StaffMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "staff",
			Name:      "mutations_total",
			Help:      "Staff directory mutations by operation and outcome",
		}, []string{"operation", "outcome"}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events published by type and outcome",
		}, []string{"type", "outcome"}),
		LowStockItems: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pharmacy",
			Name:      "low_stock_items",
			Help:      "Medicines at or below their reorder level at the last check",
		}),
		JobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Scheduled job runs by job and outcome",
		}, []string{"job", "outcome"}),
	}
}

// NewNop returns metrics registered on a private registry.
func NewNop() *Metrics {
	return NewMetrics(prometheus.NewRegistry(), "hospiflow")
}
