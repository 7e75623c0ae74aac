package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Wraps       *prometheus.CounterVec
	Unwraps     *prometheus.CounterVec
	FusesBurned *prometheus.CounterVec
	Subnodes    prometheus.Counter
}

// New registers the wrapper metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Wraps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bicns_wrapper_wraps_total",
			Help: "Total number of names wrapped, by kind",
		}, []string{"kind"}),
		Unwraps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bicns_wrapper_unwraps_total",
			Help: "Total number of names unwrapped, by kind",
		}, []string{"kind"}),
		FusesBurned: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bicns_wrapper_fuses_burned_total",
			Help: "Total number of fuse bits burned, by fuse",
		}, []string{"fuse"}),
		Subnodes: f.NewCounter(prometheus.CounterOpts{
			Name: "bicns_wrapper_subnode_assignments_total",
			Help: "Total number of wrapped subnode creations and reassignments",
		}),
	}
}

// IncWrap records one wrap of the given kind.
func (m *Metrics) IncWrap(kind string) {
	if m == nil {
		return
	}
	m.Wraps.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncUnwrap(kind string) {
	if m == nil {
		return
	}
	m.Unwraps.WithLabelValues(kind).Inc()
}

// ObserveBurn counts each fuse name newly present in names.
func (m *Metrics) ObserveBurn(names []string) {
	if m == nil {
		return
	}
	for _, n := range names {
		m.FusesBurned.WithLabelValues(n).Inc()
	}
}

func (m *Metrics) IncSubnode() {
	if m == nil {
		return
	}
	m.Subnodes.Inc()
}
