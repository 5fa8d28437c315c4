package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmorneau/fizzlab/internal/logging"
)

// Metrics bundles the Prometheus instruments the API exports. Each instance
// owns its registry, so tests can build as many as they need without
// duplicate-registration panics.
type Metrics struct {
	activeRequests   prometheus.Gauge
	totalRequests    prometheus.Counter
	numbersEvaluated prometheus.Counter
	batchDuration    prometheus.Histogram
	handler          http.Handler
}

// NewMetrics builds the instrument set on a fresh registry, alongside the
// standard Go and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fizzlab_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		totalRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fizzlab_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		numbersEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fizzlab_numbers_evaluated_total",
			Help: "Total numbers classified by sequence requests.",
		}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fizzlab_batch_duration_seconds",
			Help:    "Wall time spent generating one sequence response.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.activeRequests,
		m.totalRequests,
		m.numbersEvaluated,
		m.batchDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests records the start of a request.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests records the end of a request.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// CountRequest adds one served request to the running total.
func (m *Metrics) CountRequest() { m.totalRequests.Inc() }

// AddNumbersEvaluated adds the size of one generated sequence.
func (m *Metrics) AddNumbersEvaluated(n int) { m.numbersEvaluated.Add(float64(n)) }

// ObserveBatchDuration records the wall time of one sequence generation.
func (m *Metrics) ObserveBatchDuration(seconds float64) { m.batchDuration.Observe(seconds) }

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// metricsMiddleware tracks the active-request gauge and the request total
// around a handler.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		s.metrics.CountRequest()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("method not allowed on metrics endpoint", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}
