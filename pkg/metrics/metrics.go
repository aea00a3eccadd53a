// Package metrics provides prometheus collectors for fetch runs, modules and llm calls
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace is the namespace for all aidigest metrics
const Namespace = "aidigest"

// Metrics holds all collectors
type Metrics struct {
	RunsTotal          *prometheus.CounterVec
	RunDurationSeconds prometheus.Histogram
	ModuleItemsTotal   *prometheus.CounterVec
	ModuleErrorsTotal  *prometheus.CounterVec
	LLMRequestsTotal   *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors, nil reg means the default registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Total number of finished fetch runs by terminal status",
		}, []string{"status"}),

		RunDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of fetch runs in seconds",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1s to ~2.3h
		}),

		ModuleItemsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "module_items_total",
			Help:      "Total number of items persisted per module",
		}, []string{"module"}),

		ModuleErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "module_errors_total",
			Help:      "Total number of failed module runs",
		}, []string{"module"}),

		LLMRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "llm_requests_total",
			Help:      "Total number of llm calls by result",
		}, []string{"result"}),
	}
}

// LLMRequest counts one llm call outcome
func (m *Metrics) LLMRequest(result string) {
	m.LLMRequestsTotal.WithLabelValues(result).Inc()
}

// RunFinished records terminal status and duration of a run
func (m *Metrics) RunFinished(status string, duration time.Duration) {
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDurationSeconds.Observe(duration.Seconds())
}

// ModuleItems adds persisted item count for a module
func (m *Metrics) ModuleItems(module string, count int) {
	m.ModuleItemsTotal.WithLabelValues(module).Add(float64(count))
}

// ModuleError counts a failed module
func (m *Metrics) ModuleError(module string) {
	m.ModuleErrorsTotal.WithLabelValues(module).Inc()
}
