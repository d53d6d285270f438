package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/viewkit-dev/viewkit/pkg/render"
)

// MetricsConfig configures the Prometheus metrics decorator.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "viewkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "render").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for evaluation duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registerer to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics decorator.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registerer.
func WithRegistry(reg prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = reg }
}

// Metrics is a render.Evaluator decorator that records evaluation counts,
// failures and durations, plus recursion depth exhaustions reported via
// DepthExhausted.
type Metrics struct {
	next render.Evaluator

	evaluations prometheus.Counter
	failures    prometheus.Counter
	duration    prometheus.Histogram
	exhausted   prometheus.Counter
}

// NewMetrics wraps next with Prometheus instrumentation.
func NewMetrics(next render.Evaluator, opts ...MetricsOption) *Metrics {
	cfg := MetricsConfig{
		Namespace: "viewkit",
		Subsystem: "render",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)
	return &Metrics{
		next: next,
		evaluations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "evaluations_total",
			Help:        "Total number of single-pass template evaluations.",
			ConstLabels: cfg.ConstLabels,
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "evaluation_failures_total",
			Help:        "Total number of failed single-pass template evaluations.",
			ConstLabels: cfg.ConstLabels,
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "evaluation_duration_seconds",
			Help:        "Duration of single-pass template evaluations.",
			Buckets:     cfg.Buckets,
			ConstLabels: cfg.ConstLabels,
		}),
		exhausted: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "recursion_depth_exhausted_total",
			Help:        "Recursive evaluations truncated by the depth limit.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// Evaluate implements render.Evaluator.
func (m *Metrics) Evaluate(ctx context.Context, scope render.Scope, src string) (string, error) {
	start := time.Now()
	out, err := m.next.Evaluate(ctx, scope, src)
	m.duration.Observe(time.Since(start).Seconds())
	m.evaluations.Inc()
	if err != nil {
		m.failures.Inc()
	}
	return out, err
}

// DepthExhausted records one depth-limit truncation. Wire it to the render
// tool with render.WithExhaustionHook(metrics.DepthExhausted).
func (m *Metrics) DepthExhausted() {
	m.exhausted.Inc()
}
