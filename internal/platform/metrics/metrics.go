package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	StoreWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestore_writes_total",
			Help: "Collection writes by collection and result.",
		},
		[]string{"collection", "result"},
	)
	StoreReadFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestore_read_failures_total",
			Help: "Collection reads that fell back to an empty collection.",
		},
		[]string{"collection"},
	)
)

// NewRegistry returns a registry holding the application and Go runtime collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		RequestCount,
		RequestDuration,
		StoreWrites,
		StoreReadFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
