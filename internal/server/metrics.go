// Package server exposes benchmark progress as Prometheus metrics over an
// optional local HTTP endpoint. The benchmark is a batch process, so the
// endpoint mainly serves long sweeps watched from a scraper or a browser.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/countbench/internal/bench"
)

// Metrics aggregates benchmark counters on a private registry, keeping the
// process free of global registry state so tests can build as many instances
// as they need. Metrics implements bench.Reporter and is normally fanned in
// next to the terminal presenter.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests prometheus.Gauge
	requestsTotal  prometheus.Counter

	configurations prometheus.Counter
	measurements   *prometheus.CounterVec
	mismatches     prometheus.Counter
	unsupported    prometheus.Counter
	bestThreads    prometheus.Gauge
	bestSeconds    prometheus.Gauge
}

// NewMetrics creates a metrics set on a fresh registry, including the
// standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "countbench_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "countbench_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		configurations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "countbench_configurations_total",
			Help: "Benchmark configurations (size and predicate pairs) started.",
		}),
		measurements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "countbench_measurements_total",
			Help: "Completed timed measurements by strategy.",
		}, []string{"strategy"}),
		mismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "countbench_mismatches_total",
			Help: "Strategy results that disagreed with the sequential baseline.",
		}),
		unsupported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "countbench_unsupported_total",
			Help: "Execution policies that declined to run on this machine.",
		}),
		bestThreads: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "countbench_sweep_best_threads",
			Help: "Winning thread count of the most recent sweep.",
		}),
		bestSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "countbench_sweep_best_seconds",
			Help: "Median duration of the most recent sweep's winner, in seconds.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.activeRequests,
		m.requestsTotal,
		m.configurations,
		m.measurements,
		m.mismatches,
		m.unsupported,
		m.bestThreads,
		m.bestSeconds,
	)

	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks an HTTP request as in flight.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests marks an HTTP request as finished.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// WritePrometheus serves the registry in the Prometheus text exposition
// format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// ConfigStarted implements bench.Reporter.
func (m *Metrics) ConfigStarted(bench.RunConfig) {
	m.configurations.Inc()
}

// Record implements bench.Reporter.
func (m *Metrics) Record(meas bench.Measurement) {
	if meas.Unsupported {
		m.unsupported.Inc()
		return
	}
	m.measurements.WithLabelValues(meas.Strategy).Inc()
	if !meas.Match {
		m.mismatches.Inc()
	}
}

// SweepCompleted implements bench.Reporter.
func (m *Metrics) SweepCompleted(best bench.BestResult) {
	m.bestThreads.Set(float64(best.Threads))
	m.bestSeconds.Set(best.Median.Seconds())
}
