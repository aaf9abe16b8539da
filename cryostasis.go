// Package cryostasis freezes object graphs in place.
//
// Freezing rebinds an object's shape to a specialized shape whose guard
// denies mutation, so the object keeps its identity and stays readable.
// Thawing restores the original shape. DeepFreeze and DeepThaw apply the
// same operation to everything reachable through attributes and items,
// once per object, cycles included.
//
//	cart := cryostasis.NewDict(cryostasis.P(cryostasis.Str("items"), cryostasis.NewList()))
//	cryostasis.DeepFreeze(cart)
//	err := cart.SetItem(cryostasis.Str("items"), cryostasis.None{})
//	cryostasis.IsImmutableError(err) // true
//
// The package-level functions use a process-wide Engine. Create one with
// New or NewFromConfig to control diagnostics, default exclusions or
// metrics.
package cryostasis

import (
	"sync"
	"sync/atomic"

	"github.com/IljaManakov/cryostasis/internal/config"
	"github.com/IljaManakov/cryostasis/internal/engine"
	"github.com/IljaManakov/cryostasis/internal/exclusion"
	"github.com/IljaManakov/cryostasis/internal/object"
)

// Object model.
type (
	Object    = object.Object
	Hashable  = object.Hashable
	Shape     = object.Shape
	Error     = object.Error
	ErrorCode = object.ErrorCode

	None  = object.None
	Bool  = object.Bool
	Int   = object.Int
	Float = object.Float
	Str   = object.Str
	Bytes = object.Bytes

	List       = object.List
	Dict       = object.Dict
	Set        = object.Set
	Tuple      = object.Tuple
	FrozenSet  = object.FrozenSet
	Record     = object.Record
	Func       = object.Func
	Struct     = object.Struct
	Enum       = object.Enum
	EnumMember = object.EnumMember
)

// Engine and its options.
type (
	Engine       = engine.Engine
	EngineOption = engine.EngineOption
	Option       = engine.Option
	Stats        = engine.Stats
	Warner       = engine.Warner
	Config       = config.Config
	ExclusionSet = exclusion.Set
)

// Constructors.
var (
	NewList      = object.NewList
	NewDict      = object.NewDict
	NewSet       = object.NewSet
	NewTuple     = object.NewTuple
	NewFrozenSet = object.NewFrozenSet
	NewRecord    = object.NewRecord
	NewFunc      = object.NewFunc
	NewStruct    = object.NewStruct
	NewEnum      = object.NewEnum
	NewShape     = object.NewShape
	A            = object.A
	P            = object.P
	Repr         = object.Repr
)

// Errors.
var (
	ErrImmutable       = object.ErrImmutable
	ErrInvalidArgument = object.ErrInvalidArgument
	IsImmutableError   = object.IsImmutableError
	IsInvalidArgument  = object.IsInvalidArgument
)

// Freeze options.
var (
	FreezeAttributes = engine.FreezeAttributes
	FreezeItems      = engine.FreezeItems
	Exclude          = engine.Exclude
)

// Engine options.
var (
	WithSink              = engine.WithSink
	WithDefaultExclusions = engine.WithDefaultExclusions
	WithWarnUnsupported   = engine.WithWarnUnsupported
	WithLayout            = engine.WithLayout
)

// Exclusion sets.
var (
	NewExclusionSet = exclusion.New
	ExcludeAttrs    = exclusion.Attrs
	ExcludeItems    = exclusion.Items
	ExcludeBases    = exclusion.Bases
	ExcludeTypes    = exclusion.Types
	ExcludeObjects  = exclusion.Objects
)

// New creates an Engine.
func New(opts ...EngineOption) *Engine { return engine.New(opts...) }

// NewFromConfig creates an Engine from a configuration, see LoadConfig.
func NewFromConfig(cfg *Config, opts ...EngineOption) (*Engine, error) {
	return engine.NewFromConfig(cfg, opts...)
}

// LoadConfig reads a YAML, JSON or CUE configuration file.
func LoadConfig(path string) (*Config, error) { return config.Load(path) }

var (
	builtin  = sync.OnceValue(func() *Engine { return engine.New() })
	override atomic.Pointer[Engine]
)

// Default returns the process-wide Engine.
func Default() *Engine {
	if e := override.Load(); e != nil {
		return e
	}
	return builtin()
}

// SetDefault replaces the process-wide Engine. Nil restores the built-in one.
func SetDefault(e *Engine) { override.Store(e) }

// Freeze freezes o alone and returns it. Nil and typed-nil arguments are
// returned unchanged by every operation.
func Freeze[T Object](o T, opts ...Option) T {
	Default().Freeze(o, opts...)
	return o
}

// DeepFreeze freezes o and everything reachable from it and returns o.
func DeepFreeze[T Object](o T, opts ...Option) T {
	Default().DeepFreeze(o, opts...)
	return o
}

// Thaw restores o's original shape and returns it.
func Thaw[T Object](o T) T {
	Default().Thaw(o)
	return o
}

// DeepThaw thaws o and everything reachable from it and returns o.
func DeepThaw[T Object](o T, opts ...Option) T {
	Default().DeepThaw(o, opts...)
	return o
}

// IsFrozen reports whether o currently has a frozen shape.
func IsFrozen(o Object) bool { return Default().IsFrozen(o) }
