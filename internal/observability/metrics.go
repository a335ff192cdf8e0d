package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestMetrics exports HTTP request metrics to Prometheus.
type RequestMetrics struct {
	registry *promclient.Registry
	duration *promclient.HistogramVec
	requests *promclient.CounterVec
	inFlight promclient.Gauge
}

// NewRequestMetrics registers request counters and latency histograms on a
// dedicated registry.
func NewRequestMetrics(namespace string) (*RequestMetrics, error) {
	if namespace == "" {
		namespace = "remind"
	}
	registry := promclient.NewRegistry()
	m := &RequestMetrics{
		registry: registry,
		duration: promclient.NewHistogramVec(promclient.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests.",
			Buckets:   promclient.DefBuckets,
		}, []string{"method", "route"}),
		requests: promclient.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by status code.",
		}, []string{"method", "route", "status"}),
		inFlight: promclient.NewGauge(promclient.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of requests currently being served.",
		}),
	}
	for _, collector := range []promclient.Collector{m.duration, m.requests, m.inFlight} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return m, nil
}

// Observe records one completed request.
func (m *RequestMetrics) Observe(method, route string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(method, route).Observe(latency.Seconds())
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// RequestStarted marks a request in flight; the returned func marks it done.
func (m *RequestMetrics) RequestStarted() func() {
	if m == nil {
		return func() {}
	}
	m.inFlight.Inc()
	return m.inFlight.Dec
}

// Handler returns the scrape endpoint handler for this registry.
func (m *RequestMetrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
