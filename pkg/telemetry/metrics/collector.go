// Package metrics exposes Prometheus metrics for rule evaluation and the
// pack catalogue.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the evaluation metrics and their registry.
type Collector struct {
	registry *prometheus.Registry

	evaluations  *prometheus.CounterVec
	duration     prometheus.Histogram
	violations   *prometheus.CounterVec
	skippedRules *prometheus.CounterVec
	packs        prometheus.Gauge
}

// Config controls collector construction.
type Config struct {
	// Namespace is the metric name prefix. Default: buildcheck.
	Namespace string

	// DurationBuckets are the histogram buckets for evaluation duration
	// in seconds. Defaults cover 1ms to 10s.
	DurationBuckets []float64
}

// NewCollector creates a collector registered on its own registry. If
// registry is nil a fresh one is created.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "buildcheck"
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}
	}

	c := &Collector{
		registry: registry,
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "evaluations_total",
			Help:      "Pack evaluations, labelled by pack slug and outcome.",
		}, []string{"pack", "outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent evaluating a pack against a graph.",
			Buckets:   cfg.DurationBuckets,
		}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "violations_total",
			Help:      "Violations found, labelled by pack slug and rule id.",
		}, []string{"pack", "rule"}),
		skippedRules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "skipped_rules_total",
			Help:      "Rules skipped for configuration errors, labelled by pack slug.",
		}, []string{"pack"}),
		packs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "catalogue_packs",
			Help:      "Rule packs currently in the catalogue.",
		}),
	}

	registry.MustRegister(c.evaluations, c.duration, c.violations, c.skippedRules, c.packs)
	return c
}

// RecordEvaluation records one completed pack evaluation.
func (c *Collector) RecordEvaluation(pack string, passed bool, duration time.Duration) {
	outcome := "pass"
	if !passed {
		outcome = "fail"
	}
	c.evaluations.WithLabelValues(pack, outcome).Inc()
	c.duration.Observe(duration.Seconds())
}

// RecordViolations records the violations a rule produced.
func (c *Collector) RecordViolations(pack, rule string, count int) {
	if count > 0 {
		c.violations.WithLabelValues(pack, rule).Add(float64(count))
	}
}

// RecordSkippedRule records a rule skipped for a configuration error.
func (c *Collector) RecordSkippedRule(pack string) {
	c.skippedRules.WithLabelValues(pack).Inc()
}

// SetPackCount updates the catalogue size gauge.
func (c *Collector) SetPackCount(n int) {
	c.packs.Set(float64(n))
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the /metrics HTTP handler for this collector.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
