// Package metrics defines the Prometheus metrics exported by Torque.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "torque"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// VHC business metrics
var (
	VhcSummariesComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vhc_summaries_computed_total",
			Help:      "Total number of VHC summaries computed",
		},
	)

	VhcFinancialCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vhc_financial_calculations_total",
			Help:      "Total number of VHC financial aggregations",
		},
		[]string{"status"}, // "ok" or "empty" (no checksheet)
	)

	VhcDashboardLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vhc_dashboard_lookups_total",
			Help:      "Total number of VHC dashboard status derivations",
		},
		[]string{"status"},
	)

	VhcSummaryItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vhc_summary_items",
			Help:      "Distribution of item counts per computed summary",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)
)
