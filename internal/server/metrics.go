package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	mutations   *prometheus.CounterVec
	subscribers prometheus.Gauge
}

// NewMetrics registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elvira",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elvira",
			Name:      "mutations_total",
			Help:      "Committed record mutations by table and operation.",
		}, []string{"table", "op"}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "elvira",
			Name:      "change_subscribers",
			Help:      "Connected change-feed websocket clients.",
		}),
	}
	m.registry.MustRegister(m.requests, m.mutations, m.subscribers)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(method, route string, status int) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) observeMutation(table, op string) {
	m.mutations.WithLabelValues(table, op).Inc()
}
