// Package metrics instruments the solver driver with Prometheus
// collectors: a private registry, nil-safe methods, one histogram per
// timed operation (a HistogramVec for solves, a plain Histogram for
// repairs).
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder wraps a private Prometheus registry with the collectors the
// solver driver and repair planner touch. A nil *Recorder is safe to call
// every method on — NewNop returns one.
type Recorder struct {
	registry        *prometheus.Registry
	handler         http.Handler
	solveDuration   *prometheus.HistogramVec
	solveBindings   *prometheus.HistogramVec
	solveOutcomes   *prometheus.CounterVec
	repairDuration  prometheus.Histogram
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// New registers the scheduler's collectors on a fresh registry.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scheduler_solve_duration_seconds",
		Help:    "Wall-clock duration of a solver backend invocation",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "status"})

	solveBindings := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scheduler_candidate_bindings",
		Help:    "Number of candidate bindings fed into a solve",
		Buckets: prometheus.ExponentialBuckets(10, 4, 8),
	}, []string{"backend"})

	solveOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_solve_outcomes_total",
		Help: "Count of solve outcomes by backend and status",
	}, []string{"backend", "status"})

	repairDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_repair_duration_seconds",
		Help:    "Wall-clock duration of a repair planner run",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_solve_cache_hits_total",
		Help: "Total solve-cache hits",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_solve_cache_misses_total",
		Help: "Total solve-cache misses",
	})

	registry.MustRegister(solveDuration, solveBindings, solveOutcomes, repairDuration, cacheHits, cacheMisses)

	return &Recorder{
		registry:       registry,
		handler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		solveDuration:  solveDuration,
		solveBindings:  solveBindings,
		solveOutcomes:  solveOutcomes,
		repairDuration: repairDuration,
		cacheHits:      cacheHits,
		cacheMisses:    cacheMisses,
	}
}

// NewNop returns a Recorder whose methods are all no-ops, for callers that
// don't want metrics wiring.
func NewNop() *Recorder {
	return nil
}

// Handler exposes the Prometheus scrape handler, useful when the embedding
// application wants to merge it into its own HTTP mux.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// ObserveSolve records a solve's duration, candidate binding count, and
// outcome status.
func (r *Recorder) ObserveSolve(backend, status string, duration time.Duration, bindingCount int) {
	if r == nil {
		return
	}
	r.solveDuration.WithLabelValues(backend, status).Observe(duration.Seconds())
	r.solveBindings.WithLabelValues(backend).Observe(float64(bindingCount))
	r.solveOutcomes.WithLabelValues(backend, status).Inc()
}

// ObserveRepair records a repair planner run's duration.
func (r *Recorder) ObserveRepair(duration time.Duration) {
	if r == nil {
		return
	}
	r.repairDuration.Observe(duration.Seconds())
}

// RecordCacheLookup increments the hit or miss counter.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.cacheHits.Inc()
	} else {
		r.cacheMisses.Inc()
	}
}
