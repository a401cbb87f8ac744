package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Optimizations counts engine runs by algorithm and outcome
	Optimizations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "optimizations_total", Help: "Route optimization runs by algorithm and status."},
		[]string{"algorithm", "status"},
	)
	// OptimizationDuration tracks engine run durations in seconds
	OptimizationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "optimization_duration_seconds", Help: "Route optimization duration in seconds.", Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 15, 60}},
		[]string{"algorithm"},
	)
	// Assignments counts assignment solves by outcome
	Assignments = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "assignments_total", Help: "Order-partner assignment solves by status."},
		[]string{"status"},
	)
)

// RegisterDefault registers collectors to the default registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Optimizations)
		Registry.MustRegister(OptimizationDuration)
		Registry.MustRegister(Assignments)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
