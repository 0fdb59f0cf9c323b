package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petmate",
			Name:      "http_requests_total",
			Help:      "Gateway HTTP requests by route.",
		},
		[]string{"endpoint"},
	)

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petmate",
			Name:      "backend_requests_total",
			Help:      "Calls to the REST backend by endpoint and status code.",
		},
		[]string{"endpoint", "status"},
	)

	readFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petmate",
			Name:      "read_fallbacks_total",
			Help:      "Display reads that degraded to an empty result after a failure.",
		},
		[]string{"operation"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, backendRequests, readFallbacks)
	})
}

// IncHTTP increments the counter for a gateway route label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBackend counts a backend call. Status 0 means the request never got a response.
func IncBackend(endpoint string, status int) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	backendRequests.WithLabelValues(endpoint, label).Inc()
}

// IncReadFallback counts a read that returned its empty default.
func IncReadFallback(operation string) {
	readFallbacks.WithLabelValues(operation).Inc()
}
