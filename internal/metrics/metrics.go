// Package metrics exposes the lottery engine's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "isk_lottery"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	paymentsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "issuance",
			Name:      "payments_total",
			Help:      "Wallet payments handled, by outcome.",
		},
		[]string{"outcome"},
	)

	anomaliesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "issuance",
			Name:      "anomalies_total",
			Help:      "Anomalies recorded, by kind.",
		},
		[]string{"kind"},
	)

	ticketsIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "issuance",
			Name:      "tickets_total",
			Help:      "Tickets issued across all lotteries.",
		},
	)

	sweeps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "sweeps_total",
			Help:      "Sweep runs, by result.",
		},
		[]string{"result"},
	)

	sweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "sweep_duration_seconds",
			Help:      "Duration of sweeps that held the lease.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		},
	)

	lotteriesCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "lotteries_completed_total",
			Help:      "Lotteries drawn and completed.",
		},
	)

	degraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "degraded_total",
			Help:      "Sweep steps that proceeded without their upstream precondition.",
		},
		[]string{"reason"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		paymentsProcessed,
		anomaliesRecorded,
		ticketsIssued,
		sweeps,
		sweepDuration,
		lotteriesCompleted,
		degraded,
		httpRequests,
		httpDuration,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordPayment(outcome string, tickets int, anomalyKinds []string) {
	paymentsProcessed.WithLabelValues(outcome).Inc()
	if tickets > 0 {
		ticketsIssued.Add(float64(tickets))
	}
	for _, kind := range anomalyKinds {
		anomaliesRecorded.WithLabelValues(kind).Inc()
	}
}

func RecordSweep(result string, duration time.Duration) {
	sweeps.WithLabelValues(result).Inc()
	if duration > 0 {
		sweepDuration.Observe(duration.Seconds())
	}
}

func RecordLotteryCompleted() {
	lotteriesCompleted.Inc()
}

func RecordDegraded(reason string) {
	degraded.WithLabelValues(reason).Inc()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
