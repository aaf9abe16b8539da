package object

import (
	"iter"
	"slices"
)

// Tuple is an inherently immutable sequence. Its elements may still be
// mutable objects, which is why traversal descends into tuples.
type Tuple struct {
	items []Object
}

// NewTuple creates a Tuple holding a copy of items.
func NewTuple(items ...Object) *Tuple {
	t := &Tuple{items: make([]Object, len(items))}
	for i, v := range items {
		t.items[i] = orNone(v)
	}
	return t
}

func (*Tuple) Shape() *Shape { return TupleShape }

func (t *Tuple) String() string { return Repr(t) }

// Len returns the number of elements.
func (t *Tuple) Len() int { return len(t.items) }

// Get returns the element at i.
func (t *Tuple) Get(i int) (Object, error) {
	n := len(t.items)
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return nil, newIndexError(TupleShape, i, n)
	}
	return t.items[idx], nil
}

// Values returns a copy of the elements.
func (t *Tuple) Values() []Object { return slices.Clone(t.items) }

// Items yields (Int(index), element) pairs.
func (t *Tuple) Items() iter.Seq2[Object, Object] {
	return func(yield func(Object, Object) bool) {
		for i, v := range t.items {
			if !yield(Int(i), v) {
				return
			}
		}
	}
}
