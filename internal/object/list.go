package object

import (
	"iter"
	"slices"
)

// List is a mutable sequence.
type List struct {
	shape *Shape
	items []Object
}

// NewList creates a List holding a copy of items.
func NewList(items ...Object) *List {
	l := &List{shape: ListShape, items: make([]Object, len(items))}
	for i, v := range items {
		l.items[i] = orNone(v)
	}
	return l
}

// NewListOf creates a List whose shape derives from ListShape.
func NewListOf(shape *Shape, items ...Object) (*List, error) {
	if err := constructible(shape, ListShape); err != nil {
		return nil, err
	}
	l := NewList(items...)
	l.shape = shape
	return l, nil
}

func (l *List) Shape() *Shape { return l.shape }

func (l *List) String() string { return Repr(l) }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// Get returns the element at i. Negative indexes count from the end.
func (l *List) Get(i int) (Object, error) {
	idx, err := l.index(i)
	if err != nil {
		return nil, err
	}
	return l.items[idx], nil
}

// Values returns a copy of the elements.
func (l *List) Values() []Object { return slices.Clone(l.items) }

// Items yields (Int(index), element) pairs.
func (l *List) Items() iter.Seq2[Object, Object] {
	return func(yield func(Object, Object) bool) {
		for i, v := range l.items {
			if !yield(Int(i), v) {
				return
			}
		}
	}
}

func (l *List) index(i int) (int, error) {
	n := len(l.items)
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, newIndexError(l.shape, i, n)
	}
	return idx, nil
}

// SetItem replaces the element at i.
func (l *List) SetItem(i int, v Object) error {
	if err := Check(l, AccessSetItem); err != nil {
		return err
	}
	idx, err := l.index(i)
	if err != nil {
		return err
	}
	l.items[idx] = orNone(v)
	return nil
}

// DelItem removes the element at i.
func (l *List) DelItem(i int) error {
	if err := Check(l, AccessDelItem); err != nil {
		return err
	}
	idx, err := l.index(i)
	if err != nil {
		return err
	}
	l.items = slices.Delete(l.items, idx, idx+1)
	return nil
}

// Insert inserts v before index i, clamping i to the valid range.
func (l *List) Insert(i int, v Object) error {
	if err := CheckMutator(l, MutInsert); err != nil {
		return err
	}
	n := len(l.items)
	if i < 0 {
		i = max(i+n, 0)
	}
	i = min(i, n)
	l.items = slices.Insert(l.items, i, orNone(v))
	return nil
}

// Append adds v to the end.
func (l *List) Append(v Object) error {
	if err := CheckMutator(l, MutAppend); err != nil {
		return err
	}
	l.items = append(l.items, orNone(v))
	return nil
}

// Clear removes all elements.
func (l *List) Clear() error {
	if err := CheckMutator(l, MutClear); err != nil {
		return err
	}
	l.items = l.items[:0]
	return nil
}

// Reverse reverses the elements in place.
func (l *List) Reverse() error {
	if err := CheckMutator(l, MutReverse); err != nil {
		return err
	}
	slices.Reverse(l.items)
	return nil
}

// Extend appends every value in vs.
func (l *List) Extend(vs ...Object) error {
	if err := CheckMutator(l, MutExtend); err != nil {
		return err
	}
	for _, v := range vs {
		l.items = append(l.items, orNone(v))
	}
	return nil
}

// Pop removes and returns the element at i (-1 for the last).
func (l *List) Pop(i int) (Object, error) {
	if err := CheckMutator(l, MutPop); err != nil {
		return nil, err
	}
	idx, err := l.index(i)
	if err != nil {
		return nil, err
	}
	v := l.items[idx]
	l.items = slices.Delete(l.items, idx, idx+1)
	return v, nil
}

// Remove deletes the first element equal to v.
func (l *List) Remove(v Object) error {
	if err := CheckMutator(l, MutRemove); err != nil {
		return err
	}
	for i, cur := range l.items {
		if Equal(cur, v) {
			l.items = slices.Delete(l.items, i, i+1)
			return nil
		}
	}
	return newKeyError(l.shape, v)
}

// IAdd is the in-place concatenation operator.
func (l *List) IAdd(vs ...Object) error {
	if err := CheckMutator(l, MutIAdd); err != nil {
		return err
	}
	for _, v := range vs {
		l.items = append(l.items, orNone(v))
	}
	return nil
}

// IMul is the in-place repetition operator. n <= 0 empties the list.
func (l *List) IMul(n int) error {
	if err := CheckMutator(l, MutIMul); err != nil {
		return err
	}
	if n <= 0 {
		l.items = l.items[:0]
		return nil
	}
	l.items = slices.Repeat(l.items, n)
	return nil
}
