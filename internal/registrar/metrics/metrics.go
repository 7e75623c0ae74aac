package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts registrar lease activity.
type Metrics struct {
	Registrations prometheus.Counter
	Renewals      prometheus.Counter
	Transfers     prometheus.Counter
	Reclaims      prometheus.Counter
}

// New registers the registrar metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Registrations: f.NewCounter(prometheus.CounterOpts{
			Name: "bicns_registrar_registrations_total",
			Help: "Total number of label leases created",
		}),
		Renewals: f.NewCounter(prometheus.CounterOpts{
			Name: "bicns_registrar_renewals_total",
			Help: "Total number of label leases renewed",
		}),
		Transfers: f.NewCounter(prometheus.CounterOpts{
			Name: "bicns_registrar_transfers_total",
			Help: "Total number of label ownership transfers",
		}),
		Reclaims: f.NewCounter(prometheus.CounterOpts{
			Name: "bicns_registrar_reclaims_total",
			Help: "Total number of registry ownership reclaims",
		}),
	}
}
