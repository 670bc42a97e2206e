package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wholesale_orders",
		Subsystem: "http",
		Name:      "in_flight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wholesale_orders",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests processed.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wholesale_orders",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latencies in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	httpResponseSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wholesale_orders",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response body sizes.",
		Buckets:   prometheus.ExponentialBuckets(128, 4, 7),
	}, []string{"method", "route"})
)

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(httpInFlight, httpRequestsTotal, httpRequestDuration, httpResponseSize)
}

// Metrics labels requests by their chi route pattern, so /orders/{id} is one
// series no matter how many orders are requested.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unknown"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		labels := prometheus.Labels{
			"method": r.Method,
			"route":  route,
			"status": strconv.Itoa(status),
		}

		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
		httpResponseSize.WithLabelValues(r.Method, route).Observe(float64(ww.BytesWritten()))
	})
}
