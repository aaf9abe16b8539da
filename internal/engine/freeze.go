package engine

import (
	"github.com/IljaManakov/cryostasis/internal/metrics"
	"github.com/IljaManakov/cryostasis/internal/object"
)

type outcome int

const (
	outcomeNoop outcome = iota
	outcomeApplied
	outcomeUnsupported
	outcomeError
)

func (o outcome) label() string {
	switch o {
	case outcomeApplied:
		return metrics.OutcomeApplied
	case outcomeUnsupported:
		return metrics.OutcomeUnsupported
	case outcomeError:
		return metrics.OutcomeError
	}
	return metrics.OutcomeNoop
}

// Freeze makes o reject mutation and returns o.
//
// Inherently immutable and already frozen objects are returned unchanged;
// refreezing with other flags keeps the first flags. Unsupported objects
// are skipped with a diagnostic.
func (e *Engine) Freeze(o object.Object, opts ...Option) object.Object {
	c := newCallOptions(opts)
	res := e.freeze(o, c.freezeAttributes, c.freezeItems)
	e.metrics.RecordOperation(metrics.OpFreeze, res.label())
	return o
}

// Thaw restores o's original shape and returns o. It is a no-op on
// objects that are not frozen.
func (e *Engine) Thaw(o object.Object) object.Object {
	res := e.thaw(o)
	e.metrics.RecordOperation(metrics.OpThaw, res.label())
	return o
}

// IsFrozen reports whether o currently carries a specialized shape.
func (e *Engine) IsFrozen(o object.Object) bool {
	return !object.IsNil(o) && o.Shape().IsSpecialized()
}

func (e *Engine) freeze(o object.Object, freezeAttributes, freezeItems bool) outcome {
	if object.IsNil(o) {
		return outcomeNoop
	}
	shape := o.Shape()
	if shape.Immutable() || shape.IsSpecialized() {
		return outcomeNoop
	}
	if shape.Unsupported() || !e.canRebind(o) {
		if e.warnUnsupported {
			e.sink.Warn("Skipping freeze of unsupported object",
				"shape", shape.Name(), "repr", object.Repr(o))
		}
		return outcomeUnsupported
	}

	special := e.cache.GetOrCreate(shape, freezeAttributes, freezeItems)
	if err := e.rebind(o, special); err != nil {
		e.sink.Warn("Failed to rebind object", "shape", shape.Name(), "error", err)
		return outcomeError
	}
	return outcomeApplied
}

func (e *Engine) thaw(o object.Object) outcome {
	if object.IsNil(o) || !o.Shape().IsSpecialized() {
		return outcomeNoop
	}
	if err := e.rebind(o, o.Shape().Original()); err != nil {
		e.sink.Warn("Failed to rebind object", "shape", o.Shape().Name(), "error", err)
		return outcomeError
	}
	return outcomeApplied
}

func (e *Engine) canRebind(o object.Object) bool {
	if e.layout.IsFixedLayout(o) {
		return true
	}
	_, ok := o.(object.Rebindable)
	return ok
}

func (e *Engine) rebind(o object.Object, s *object.Shape) error {
	if e.layout.IsFixedLayout(o) {
		return e.layout.SetSpecializedType(o, s)
	}
	rb, ok := o.(object.Rebindable)
	if !ok {
		return object.NewInvalidArgument("%s cannot be rebound", o.Shape().Name())
	}
	rb.SetShape(s)
	return nil
}
