// Package metrics holds Prometheus instruments used across the admin
// backend.  All collectors are registered with the global registry, so
// importing this package in cmd/admin is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveHandles = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tenant_handles_active",
			Help: "Number of tenant connection handles currently cached.",
		})

	HandleOpenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_handle_open_total",
			Help: "Cumulative number of tenant handles created.",
		})

	HandleEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_handle_evict_total",
			Help: "Cumulative number of tenant handles evicted from the registry.",
		})

	ProbeFailTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_probe_fail_total",
			Help: "Cumulative number of failed tenant liveness probes.",
		})

	LoginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_login_total",
			Help: "Admin login attempts partitioned by outcome.",
		}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		ActiveHandles,
		HandleOpenTotal,
		HandleEvictTotal,
		ProbeFailTotal,
		LoginTotal,
	)
}
