package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the aggregation engine: session churn, merge throughput and
// the failure paths that are otherwise only visible in logs. It implements
// ministry.Recorder.
type Metrics struct {
	ActiveSessions  prometheus.Gauge
	Merges          prometheus.Counter
	CoalescedBursts prometheus.Counter
	Suppressed      prometheus.Counter
	Failures        *prometheus.CounterVec
	ResolvedTenants prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ministry_active_sessions",
			Help: "Number of live aggregation sessions",
		}),
		Merges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ministry_merges_total",
			Help: "Total number of aggregate rebuilds",
		}),
		CoalescedBursts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ministry_attendance_coalesced_total",
			Help: "Total number of debounced attendance deliveries",
		}),
		Suppressed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ministry_optimistic_suppressed_total",
			Help: "Total number of attendance records held back by optimistic marks",
		}),
		Failures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ministry_tenant_failures_total",
			Help: "Total number of per-tenant fetch and subscribe failures",
		}, []string{"op"}),
		ResolvedTenants: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ministry_resolved_tenants",
			Help:    "Number of tenants contributing to a session at resolution time",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
	}
}

func (m *Metrics) SessionStarted() { m.ActiveSessions.Inc() }
func (m *Metrics) SessionStopped() { m.ActiveSessions.Dec() }
func (m *Metrics) MergeApplied()   { m.Merges.Inc() }

func (m *Metrics) AttendanceCoalesced() { m.CoalescedBursts.Inc() }

func (m *Metrics) OptimisticSuppressed(count int) {
	m.Suppressed.Add(float64(count))
}

func (m *Metrics) TenantFailure(op string) {
	m.Failures.WithLabelValues(op).Inc()
}

func (m *Metrics) TenantsResolved(count int) {
	m.ResolvedTenants.Observe(float64(count))
}
