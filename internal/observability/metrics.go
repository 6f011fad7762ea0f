package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	apiRequests  *prometheus.CounterVec
	apiLatency   *prometheus.HistogramVec
	apiInflight  prometheus.Gauge
	summaryQuery *prometheus.CounterVec
	summaryRows  prometheus.Histogram
}

// NewMetrics registers the service collectors on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reporting_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reporting_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reporting_http_inflight_requests",
			Help: "Requests currently being served.",
		}),
		summaryQuery: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reporting_order_summary_queries_total",
			Help: "Order summary executions by outcome.",
		}, []string{"outcome"}),
		summaryRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reporting_order_summary_regions",
			Help:    "Regions returned per order summary.",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
	}
	reg.MustRegister(m.apiRequests, m.apiLatency, m.apiInflight, m.summaryQuery, m.summaryRows)
	return m
}

func (m *Metrics) ApiInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) ApiInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

// ObserveOrderSummary records one summary execution. regions is ignored on
// failure.
func (m *Metrics) ObserveOrderSummary(regions int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.summaryQuery.WithLabelValues("error").Inc()
		return
	}
	m.summaryQuery.WithLabelValues("ok").Inc()
	m.summaryRows.Observe(float64(regions))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
