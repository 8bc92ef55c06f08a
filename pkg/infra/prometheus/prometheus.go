package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvesthub_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"method", "path", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "harvesthub_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "path"},
	)

	RateLimitRejections = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvesthub_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"policy"},
	)

	CsrfRejections = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvesthub_csrf_rejections_total",
			Help: "Requests rejected by the CSRF guard",
		},
		[]string{"reason"},
	)
)

func init() {
	registerer.MustRegister(collectors.NewGoCollector())
	registerer.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Registry exposes the private registry for the /metrics endpoint.
func Registry() *prometheus.Registry {
	return registry
}
