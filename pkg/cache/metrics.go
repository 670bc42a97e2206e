package cache

import "github.com/prometheus/client_golang/prometheus"

var (
	lookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wholesale_orders",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Order cache lookups by backend and result.",
	}, []string{"backend", "result"})

	evictions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wholesale_orders",
		Subsystem: "cache",
		Name:      "evictions_total",
		Help:      "Orders dropped from the in-process cache, by reason.",
	}, []string{"reason"})
)

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(lookups, evictions)
}

func observeLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	lookups.WithLabelValues(backend, result).Inc()
}
