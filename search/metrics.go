package search

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcome label values.
const (
	OutcomeFound          = "found"
	OutcomeNotFound       = "not_found"
	OutcomeBudgetExceeded = "budget_exceeded"
	OutcomeCanceled       = "canceled"
	OutcomeError          = "error"
)

// PrometheusMetrics provides Prometheus metrics for search runs.
//
// Metrics exposed (all namespaced with "astar_"):
//
// 1. searches_total (counter): Completed searches.
// Labels: problem, outcome (found, not_found, budget_exceeded, canceled, error).
//
// 2. expansions_total (counter): Expanded states across all searches.
// Labels: problem.
//
// 3. reopened_total (counter): Closed states reopened via a cheaper path.
// Labels: problem.
//
// 4. open_size / closed_size (gauges): Frontier sizes of the most recent
// expansion. Labels: problem.
//
// 5. search_duration_ms (histogram): Wall time per search.
// Labels: problem.
//
// 6. solution_cost (histogram): Total cost of found solutions.
// Labels: problem.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := search.NewPrometheusMetrics(registry)
//	engine, _ := search.New(problem, search.WithMetrics(metrics))
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// Thread-safe: one PrometheusMetrics may serve concurrent searches.
type PrometheusMetrics struct {
	searches   *prometheus.CounterVec
	expansions *prometheus.CounterVec
	reopened   *prometheus.CounterVec

	openSize   *prometheus.GaugeVec
	closedSize *prometheus.GaugeVec

	duration *prometheus.HistogramVec
	cost     *prometheus.HistogramVec

	mu      sync.RWMutex
	enabled bool
}

// NewPrometheusMetrics creates and registers all search metrics with the
// provided registry. A nil registry uses prometheus.DefaultRegisterer.
//
// Registering twice against the same registry panics, as with any
// promauto collector; create one PrometheusMetrics per registry.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	pm := &PrometheusMetrics{enabled: true}

	pm.searches = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "astar",
		Name:      "searches_total",
		Help:      "Completed searches by problem and outcome",
	}, []string{"problem", "outcome"})

	pm.expansions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "astar",
		Name:      "expansions_total",
		Help:      "States expanded across all searches",
	}, []string{"problem"})

	pm.reopened = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "astar",
		Name:      "reopened_total",
		Help:      "Closed states reopened because a cheaper path was found",
	}, []string{"problem"})

	pm.openSize = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "astar",
		Name:      "open_size",
		Help:      "Number of states on the open frontier at the last expansion",
	}, []string{"problem"})

	pm.closedSize = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "astar",
		Name:      "closed_size",
		Help:      "Number of states in the closed set at the last expansion",
	}, []string{"problem"})

	pm.duration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "astar",
		Name:      "search_duration_ms",
		Help:      "Search wall time in milliseconds",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000, 60000},
	}, []string{"problem"})

	pm.cost = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "astar",
		Name:      "solution_cost",
		Help:      "Total path cost of found solutions",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"problem"})

	return pm
}

func (pm *PrometheusMetrics) isEnabled() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// RecordExpansion counts one expansion and updates the frontier gauges.
func (pm *PrometheusMetrics) RecordExpansion(problem string, open, closed int) {
	if !pm.isEnabled() {
		return
	}
	pm.expansions.WithLabelValues(problem).Inc()
	pm.openSize.WithLabelValues(problem).Set(float64(open))
	pm.closedSize.WithLabelValues(problem).Set(float64(closed))
}

// IncrementReopened counts one reopened state.
func (pm *PrometheusMetrics) IncrementReopened(problem string) {
	if !pm.isEnabled() {
		return
	}
	pm.reopened.WithLabelValues(problem).Inc()
}

// RecordSearch records the outcome and duration of a finished search. The
// cost is observed only for OutcomeFound.
func (pm *PrometheusMetrics) RecordSearch(problem, outcome string, duration time.Duration, cost float64) {
	if !pm.isEnabled() {
		return
	}
	pm.searches.WithLabelValues(problem, outcome).Inc()
	pm.duration.WithLabelValues(problem).Observe(float64(duration.Milliseconds()))
	if outcome == OutcomeFound {
		pm.cost.WithLabelValues(problem).Observe(cost)
	}
}

// Disable temporarily disables metric recording.
func (pm *PrometheusMetrics) Disable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = false
}

// Enable re-enables metric recording after Disable.
func (pm *PrometheusMetrics) Enable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = true
}
