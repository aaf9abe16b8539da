// Package metrics instruments the freeze engine and the specialized-type
// cache with Prometheus collectors.
//
// Every collector lives on a private registry owned by Metrics, so several
// engines in one process (or in parallel tests) never collide on
// registration. A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name when Config.Namespace is empty.
const DefaultNamespace = "cryostasis"

// Operation labels.
const (
	OpFreeze     = "freeze"
	OpThaw       = "thaw"
	OpDeepFreeze = "deepfreeze"
	OpDeepThaw   = "deepthaw"
)

// Outcome labels.
const (
	OutcomeApplied     = "applied"
	OutcomeNoop        = "noop"
	OutcomeUnsupported = "unsupported"
	OutcomeError       = "error"
)

// Config controls whether metrics are collected.
type Config struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace" json:"namespace" validate:"required_if=Enabled true,excludesall=-"`
}

// Metrics holds the collectors for one engine.
type Metrics struct {
	registry *prometheus.Registry

	operations   *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	reclaims     prometheus.Counter
	entries      prometheus.Gauge
	nodes        prometheus.Histogram
}

// New builds collectors for cfg. It returns nil, nil when metrics are
// disabled; all methods accept a nil receiver.
func New(cfg Config) (*Metrics, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "engine",
				Name:      "operations_total",
				Help:      "Freeze and thaw operations by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "typecache",
				Name:      "lookups_total",
				Help:      "Specialized shape lookups by result",
			},
			[]string{"result"},
		),
		reclaims: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "typecache",
			Name:      "reclaims_total",
			Help:      "Cache entries removed after their shape became unreachable",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: "typecache",
			Name:      "entries",
			Help:      "Live entries in the specialized shape cache",
		}),
		nodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "engine",
			Name:      "traversal_nodes",
			Help:      "Nodes visited per deep traversal",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.cacheLookups, m.reclaims, m.entries, m.nodes} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return m, nil
}

// Registry returns the private registry, or nil when disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordOperation counts one engine operation.
func (m *Metrics) RecordOperation(op, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

// ObserveTraversal records the number of nodes one deep traversal visited.
func (m *Metrics) ObserveTraversal(visited int) {
	if m == nil {
		return
	}
	m.nodes.Observe(float64(visited))
}

// CacheHit counts a lookup served by a live entry.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss counts a lookup that built a new specialized shape.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// CacheReclaim counts an entry dropped by the reclaim callback.
func (m *Metrics) CacheReclaim() {
	if m == nil {
		return
	}
	m.reclaims.Inc()
}

// SetCacheEntries reports the current number of cache entries.
func (m *Metrics) SetCacheEntries(n int) {
	if m == nil {
		return
	}
	m.entries.Set(float64(n))
}

// WriteTextfile writes the registry in the Prometheus text format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
