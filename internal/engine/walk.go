package engine

import (
	"github.com/IljaManakov/cryostasis/internal/exclusion"
	"github.com/IljaManakov/cryostasis/internal/metrics"
	"github.com/IljaManakov/cryostasis/internal/object"
)

// Stats summarizes one deep traversal.
type Stats struct {
	// Visited counts the nodes the operation was applied to.
	Visited int
	// Changed counts the nodes whose shape was rebound.
	Changed int
	// Skipped counts excluded nodes and unsupported objects.
	Skipped int
}

// DeepFreeze freezes o and everything reachable from it through attributes
// and items, then returns o. The engine's default exclusions are unioned
// with any passed through Exclude.
func (e *Engine) DeepFreeze(o object.Object, opts ...Option) object.Object {
	e.DeepFreezeStats(o, opts...)
	return o
}

// DeepFreezeStats is DeepFreeze reporting traversal statistics.
func (e *Engine) DeepFreezeStats(o object.Object, opts ...Option) Stats {
	c := newCallOptions(opts)
	excl := e.defaults.Union(c.exclude)
	stats := e.walk(o, excl, func(n object.Object) outcome {
		return e.freeze(n, c.freezeAttributes, c.freezeItems)
	})
	e.metrics.RecordOperation(metrics.OpDeepFreeze, metrics.OutcomeApplied)
	e.metrics.ObserveTraversal(stats.Visited)
	return stats
}

// DeepThaw thaws o and everything reachable from it, then returns o.
// Only exclusions passed through Exclude apply; flag options are ignored.
func (e *Engine) DeepThaw(o object.Object, opts ...Option) object.Object {
	e.DeepThawStats(o, opts...)
	return o
}

// DeepThawStats is DeepThaw reporting traversal statistics.
func (e *Engine) DeepThawStats(o object.Object, opts ...Option) Stats {
	c := newCallOptions(opts)
	stats := e.walk(o, c.exclude, e.thaw)
	e.metrics.RecordOperation(metrics.OpDeepThaw, metrics.OutcomeApplied)
	e.metrics.ObserveTraversal(stats.Visited)
	return stats
}

// walk applies op to root and every node reachable from it. Excluded
// nodes are leaves: neither processed nor descended into. Children are
// pushed before the stack is popped again, so memory is bounded by the
// graph size rather than its depth.
func (e *Engine) walk(root object.Object, excl *exclusion.Set, op func(object.Object) outcome) Stats {
	var stats Stats
	visited := newVisitedSet()
	stack := []object.Object{root}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if object.IsNil(n) {
			continue
		}
		if excl.ContainsObject(n) || excl.ContainsInstance(n) {
			if visited.Visit(n) {
				stats.Skipped++
			}
			continue
		}
		if !visited.Visit(n) {
			continue
		}

		stats.Visited++
		switch op(n) {
		case outcomeApplied:
			stats.Changed++
		case outcomeUnsupported:
			stats.Skipped++
		}

		stack = pushChildren(stack, n, excl)
	}
	return stats
}

func pushChildren(stack []object.Object, n object.Object, excl *exclusion.Set) []object.Object {
	if ae, ok := n.(object.AttrEnumerator); ok {
		for name, v := range ae.Attrs() {
			if !excl.ContainsAttr(name) {
				stack = append(stack, v)
			}
		}
	}

	switch n.(type) {
	case object.Str, object.Bytes:
		return stack
	}

	ie, ok := n.(object.ItemEnumerator)
	if !ok {
		return stack
	}
	mapping := n.Shape().Kind() == object.KindMapping
	for k, v := range ie.Items() {
		if excl.ContainsItem(k) {
			continue
		}
		if mapping {
			stack = append(stack, k)
		}
		stack = append(stack, v)
	}
	return stack
}
