// Package metrics holds the Prometheus collectors for the wellness API.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report outcomes
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for insight reports and the HTTP layer.
type Metrics struct {
	ReportsTotal    *prometheus.CounterVec
	ReportDuration  prometheus.Histogram
	SkippedTotal    prometheus.Counter
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on the default registry.
// Registration happens once per process; later calls return the same set.
//
// Metrics:
//   - wellness_insight_reports_total{outcome}
//   - wellness_insight_report_duration_seconds
//   - wellness_checkins_skipped_total
//   - wellness_http_requests_total{method,route,status}
//   - wellness_http_request_duration_seconds{method,route}
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			ReportsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "wellness_insight_reports_total",
					Help: "Total number of insight reports requested",
				},
				[]string{"outcome"}, // "ok" or "error"
			),

			ReportDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "wellness_insight_report_duration_seconds",
					Help:    "Time spent fetching data and building an insight report",
					Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~2.5s
				},
			),

			SkippedTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "wellness_checkins_skipped_total",
					Help: "Malformed or foreign check-ins excluded from reports",
				},
			),

			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "wellness_http_requests_total",
					Help: "Total number of HTTP requests handled",
				},
				[]string{"method", "route", "status"},
			),

			RequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "wellness_http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
		}
	})

	return globalMetrics
}

// RecordReport records one report attempt. A nil receiver is a no-op.
func (m *Metrics) RecordReport(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.ReportsTotal.WithLabelValues(outcome).Inc()
	m.ReportDuration.Observe(d.Seconds())
}

// RecordSkipped adds n excluded check-ins.
func (m *Metrics) RecordSkipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SkippedTotal.Add(float64(n))
}

// RecordRequest records a handled HTTP request.
func (m *Metrics) RecordRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
