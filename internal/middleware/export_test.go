package middleware

import "github.com/prometheus/client_golang/prometheus"

func HTTPRequests(method, route, status string) prometheus.Counter {
	return httpRequestsTotal.WithLabelValues(method, route, status)
}
