package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wholesale_orders"

var (
	messagesProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kafka_consumer",
			Name:      "messages_processed_total",
			Help:      "Total number of order requests turned into orders",
		},
	)

	messagesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kafka_consumer",
			Name:      "messages_failed_total",
			Help:      "Total number of order requests that could not be processed",
		},
	)

	messagesDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kafka_consumer",
			Name:      "messages_dlq_total",
			Help:      "Total number of order requests written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	messageProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "kafka_consumer",
			Name:      "message_processing_duration_seconds",
			Help:      "Histogram of order request processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	messagesInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "kafka_consumer",
			Name:      "messages_in_progress",
			Help:      "Number of order requests currently being processed",
		},
	)
)

var (
	ordersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of created orders by source",
		},
		[]string{"source"},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "status_transitions_total",
			Help:      "Total number of applied status transitions by target status",
		},
		[]string{"status"},
	)

	requestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "errors_total",
			Help:      "Total number of failed order operations by error kind",
		},
		[]string{"kind"},
	)
)

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		messagesProcessed,
		messagesFailed,
		messagesDLQ,
		commitErrors,
		messageProcessingDuration,
		messagesInProgress,

		ordersCreated,
		statusTransitions,
		requestErrors,
	)
}
