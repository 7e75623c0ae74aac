package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the commit-reveal flow.
type Metrics struct {
	Commits          prometheus.Counter
	Registrations    *prometheus.CounterVec
	Renewals         prometheus.Counter
	Refunds          *prometheus.CounterVec
	RegisterDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Commits: f.NewCounter(prometheus.CounterOpts{
			Name: "bicns_controller_commits_total",
			Help: "Total number of accepted commitments",
		}),
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bicns_controller_registrations_total",
			Help: "Total number of completed registrations by path",
		}, []string{"path"}),
		Renewals: f.NewCounter(prometheus.CounterOpts{
			Name: "bicns_controller_renewals_total",
			Help: "Total number of paid renewals",
		}),
		Refunds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bicns_controller_refunds_total",
			Help: "Fee refunds after a failed registration or renewal",
		}, []string{"result"}),
		RegisterDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bicns_controller_register_duration_seconds",
			Help:    "Latency of register calls, debit and refund included",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncCommit() {
	if m != nil {
		m.Commits.Inc()
	}
}

func (m *Metrics) IncRegistration(path string) {
	if m != nil {
		m.Registrations.WithLabelValues(path).Inc()
	}
}

func (m *Metrics) IncRenewal() {
	if m != nil {
		m.Renewals.Inc()
	}
}

func (m *Metrics) IncRefund(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.Refunds.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRegister(start time.Time) {
	if m != nil {
		m.RegisterDuration.Observe(time.Since(start).Seconds())
	}
}
