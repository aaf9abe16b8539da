package engine

import (
	"fmt"
	"log/slog"

	"github.com/IljaManakov/cryostasis/internal/config"
	"github.com/IljaManakov/cryostasis/internal/exclusion"
	"github.com/IljaManakov/cryostasis/internal/metrics"
	"github.com/IljaManakov/cryostasis/internal/object"
	"github.com/IljaManakov/cryostasis/internal/typecache"
)

// Warner receives non-fatal diagnostics. *slog.Logger satisfies it.
// Implementations must not block.
type Warner interface {
	Warn(msg string, args ...any)
}

// Engine freezes and thaws objects.
type Engine struct {
	cache           *typecache.Cache
	layout          object.LayoutAdapter
	sink            Warner
	metrics         *metrics.Metrics
	defaults        *exclusion.Set
	warnUnsupported bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSink sets the diagnostic sink. Default: slog.Default().
func WithSink(w Warner) EngineOption {
	return func(e *Engine) { e.sink = w }
}

// WithLayout sets the adapter used to rebind fixed-layout objects.
// Default: object.BuiltinLayout.
func WithLayout(l object.LayoutAdapter) EngineOption {
	return func(e *Engine) { e.layout = l }
}

// WithCache shares a type cache between engines.
func WithCache(c *typecache.Cache) EngineOption {
	return func(e *Engine) { e.cache = c }
}

// WithMetrics attaches Prometheus collectors. A nil value disables them.
func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// WithDefaultExclusions replaces the exclusions DeepFreeze always applies.
// Default: instances of object.EnumShape.
func WithDefaultExclusions(s *exclusion.Set) EngineOption {
	return func(e *Engine) { e.defaults = s.Clone() }
}

// WithWarnUnsupported toggles the diagnostic emitted when an unsupported
// object is skipped. Default: true.
func WithWarnUnsupported(on bool) EngineOption {
	return func(e *Engine) { e.warnUnsupported = on }
}

// DefaultExclusions returns the exclusions a new Engine starts with.
func DefaultExclusions() *exclusion.Set {
	return exclusion.New(exclusion.Types(object.EnumShape))
}

// New creates an Engine.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		layout:          object.BuiltinLayout{},
		sink:            slog.Default(),
		defaults:        DefaultExclusions(),
		warnUnsupported: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = typecache.New(e.metrics)
	}
	return e
}

// NewFromConfig creates an Engine from process configuration. Options are
// applied after the configuration and override it.
func NewFromConfig(cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	defaults, err := cfg.Exclusions()
	if err != nil {
		return nil, fmt.Errorf("resolve default exclusions: %w", err)
	}
	m, err := metrics.New(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	base := []EngineOption{
		WithDefaultExclusions(defaults),
		WithWarnUnsupported(cfg.WarnUnsupported),
		WithMetrics(m),
	}
	return New(append(base, opts...)...), nil
}

// Metrics returns the attached collectors, or nil.
func (e *Engine) Metrics() *metrics.Metrics { return e.metrics }

// Cache returns the engine's type cache.
func (e *Engine) Cache() *typecache.Cache { return e.cache }
