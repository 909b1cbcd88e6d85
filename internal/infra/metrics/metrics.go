package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

type ServerMetrics struct {
	registry          *prometheus.Registry
	Requests          *prometheus.CounterVec
	LatencyMS         *prometheus.HistogramVec
	Checkouts         *prometheus.CounterVec
	StatusTransitions *prometheus.CounterVec
}

// NewServerMetrics 每個 instance 使用自己的 registry
func NewServerMetrics() *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route", "method"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "checkouts_total",
		Help:      "Checkout attempts by result.",
	}, []string{"result"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "status_transitions_total",
		Help:      "Order status change requests by actor role, target status and result.",
	}, []string{"role", "status", "result"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requests, latency, checkouts, transitions,
	)
	return &ServerMetrics{
		registry:          reg,
		Requests:          requests,
		LatencyMS:         latency,
		Checkouts:         checkouts,
		StatusTransitions: transitions,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *ServerMetrics) ObserveCheckout(result string) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(result).Inc()
}

func (m *ServerMetrics) ObserveStatusTransition(role, status, result string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(role, status, result).Inc()
}
