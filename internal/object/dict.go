package object

import (
	"iter"
	"slices"
)

// Dict is a mutable mapping that preserves insertion order.
type Dict struct {
	shape *Shape
	keys  []Hashable
	vals  map[Hashable]Object
}

// NewDict creates a Dict from pairs. Later duplicates overwrite earlier ones.
func NewDict(pairs ...Pair) *Dict {
	d := &Dict{shape: DictShape, vals: make(map[Hashable]Object, len(pairs))}
	for _, p := range pairs {
		d.put(p.Key, p.Value)
	}
	return d
}

// NewDictOf creates a Dict whose shape derives from DictShape.
func NewDictOf(shape *Shape, pairs ...Pair) (*Dict, error) {
	if err := constructible(shape, DictShape); err != nil {
		return nil, err
	}
	d := NewDict(pairs...)
	d.shape = shape
	return d, nil
}

func (d *Dict) Shape() *Shape { return d.shape }

func (d *Dict) String() string { return Repr(d) }

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Get returns the value stored under key.
func (d *Dict) Get(key Hashable) (Object, bool) {
	v, ok := d.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []Hashable { return slices.Clone(d.keys) }

// Items yields (key, value) pairs in insertion order.
func (d *Dict) Items() iter.Seq2[Object, Object] {
	return func(yield func(Object, Object) bool) {
		for _, k := range d.keys {
			if !yield(k, d.vals[k]) {
				return
			}
		}
	}
}

func (d *Dict) put(key Hashable, v Object) {
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = orNone(v)
}

func (d *Dict) drop(key Hashable) {
	delete(d.vals, key)
	if i := slices.Index(d.keys, key); i >= 0 {
		d.keys = slices.Delete(d.keys, i, i+1)
	}
}

// SetItem stores v under key.
func (d *Dict) SetItem(key Hashable, v Object) error {
	if err := Check(d, AccessSetItem); err != nil {
		return err
	}
	d.put(key, v)
	return nil
}

// DelItem removes key.
func (d *Dict) DelItem(key Hashable) error {
	if err := Check(d, AccessDelItem); err != nil {
		return err
	}
	if _, ok := d.vals[key]; !ok {
		return newKeyError(d.shape, key)
	}
	d.drop(key)
	return nil
}

// Pop removes key and returns its value.
func (d *Dict) Pop(key Hashable) (Object, error) {
	if err := CheckMutator(d, MutPop); err != nil {
		return nil, err
	}
	v, ok := d.vals[key]
	if !ok {
		return nil, newKeyError(d.shape, key)
	}
	d.drop(key)
	return v, nil
}

// PopItem removes and returns the most recently inserted entry.
func (d *Dict) PopItem() (Pair, error) {
	if err := CheckMutator(d, MutPopItem); err != nil {
		return Pair{}, err
	}
	if len(d.keys) == 0 {
		return Pair{}, &Error{Code: ErrCodeKey, Message: "popitem on empty dict", Shape: d.shape.name}
	}
	k := d.keys[len(d.keys)-1]
	p := Pair{Key: k, Value: d.vals[k]}
	d.drop(k)
	return p, nil
}

// Clear removes all entries.
func (d *Dict) Clear() error {
	if err := CheckMutator(d, MutClear); err != nil {
		return err
	}
	d.keys = d.keys[:0]
	clear(d.vals)
	return nil
}

// Update copies every entry of other into d.
func (d *Dict) Update(other *Dict) error {
	if err := CheckMutator(d, MutUpdate); err != nil {
		return err
	}
	d.merge(other)
	return nil
}

// SetDefault returns the value under key, storing def first if absent.
func (d *Dict) SetDefault(key Hashable, def Object) (Object, error) {
	if err := CheckMutator(d, MutSetDefault); err != nil {
		return nil, err
	}
	if v, ok := d.vals[key]; ok {
		return v, nil
	}
	d.put(key, def)
	return d.vals[key], nil
}

// IOr is the in-place merge operator.
func (d *Dict) IOr(other *Dict) error {
	if err := CheckMutator(d, MutIOr); err != nil {
		return err
	}
	d.merge(other)
	return nil
}

func (d *Dict) merge(other *Dict) {
	if other == nil {
		return
	}
	for _, k := range slices.Clone(other.keys) {
		d.put(k, other.vals[k])
	}
}
