// Package metrics holds the prometheus collectors shared by the api
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crimestats_http_requests_total",
			Help: "HTTP requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crimestats_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crimestats_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	Panics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crimestats_http_panics_total",
			Help: "Handler panics recovered per route pattern",
		},
		[]string{"route"},
	)

	// Reports
	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crimestats_reports_total",
			Help: "Report runs by report type and outcome (ok, empty, failed)",
		},
		[]string{"report", "state"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crimestats_report_query_duration_seconds",
			Help:    "Executor time per report query",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report", "backend"},
	)

	QueryRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crimestats_report_rows",
			Help:    "Rows returned per report query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"report"},
	)

	NormalizationIssues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crimestats_normalization_issues_total",
			Help: "Filter values dropped during normalization by kind",
		},
		[]string{"kind"},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crimestats_breaker_state",
			Help: "Executor circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// Handler serves the default registry
func Handler() http.Handler { return promhttp.Handler() }
