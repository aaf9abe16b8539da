package object

import (
	"iter"
	"slices"
)

// members is an insertion-ordered set of hashables shared by Set and
// FrozenSet.
type members struct {
	order []Hashable
	index map[Hashable]struct{}
}

func newMembers(vs []Hashable) members {
	m := members{index: make(map[Hashable]struct{}, len(vs))}
	for _, v := range vs {
		m.add(v)
	}
	return m
}

func (m *members) has(v Hashable) bool {
	_, ok := m.index[v]
	return ok
}

func (m *members) add(v Hashable) {
	if v == nil {
		v = None{}
	}
	if m.has(v) {
		return
	}
	m.order = append(m.order, v)
	m.index[v] = struct{}{}
}

func (m *members) remove(v Hashable) bool {
	if !m.has(v) {
		return false
	}
	delete(m.index, v)
	m.order = slices.DeleteFunc(m.order, func(cur Hashable) bool { return cur == v })
	return true
}

func (m *members) clear() {
	m.order = m.order[:0]
	clear(m.index)
}

func (m *members) seq() iter.Seq2[Object, Object] {
	return func(yield func(Object, Object) bool) {
		for _, v := range m.order {
			if !yield(v, v) {
				return
			}
		}
	}
}

// Set is a mutable set that preserves insertion order.
type Set struct {
	shape *Shape
	m     members
}

// NewSet creates a Set from vs.
func NewSet(vs ...Hashable) *Set {
	return &Set{shape: SetShape, m: newMembers(vs)}
}

// NewSetOf creates a Set whose shape derives from SetShape.
func NewSetOf(shape *Shape, vs ...Hashable) (*Set, error) {
	if err := constructible(shape, SetShape); err != nil {
		return nil, err
	}
	s := NewSet(vs...)
	s.shape = shape
	return s, nil
}

func (s *Set) Shape() *Shape { return s.shape }

func (s *Set) String() string { return Repr(s) }

// Len returns the number of members. A nil *Set is empty.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m.order)
}

// Contains reports membership.
func (s *Set) Contains(v Hashable) bool { return s != nil && s.m.has(v) }

// Members returns the members in insertion order.
func (s *Set) Members() []Hashable {
	if s == nil {
		return nil
	}
	return slices.Clone(s.m.order)
}

// Items yields (member, member) pairs.
func (s *Set) Items() iter.Seq2[Object, Object] { return s.m.seq() }

// Add inserts v.
func (s *Set) Add(v Hashable) error {
	if err := CheckMutator(s, MutAdd); err != nil {
		return err
	}
	s.m.add(v)
	return nil
}

// Discard removes v if present.
func (s *Set) Discard(v Hashable) error {
	if err := CheckMutator(s, MutDiscard); err != nil {
		return err
	}
	s.m.remove(v)
	return nil
}

// Remove removes v, failing if it is absent.
func (s *Set) Remove(v Hashable) error {
	if err := CheckMutator(s, MutRemove); err != nil {
		return err
	}
	if !s.m.remove(v) {
		return newKeyError(s.shape, v)
	}
	return nil
}

// Pop removes and returns the oldest member.
func (s *Set) Pop() (Hashable, error) {
	if err := CheckMutator(s, MutPop); err != nil {
		return nil, err
	}
	if len(s.m.order) == 0 {
		return nil, &Error{Code: ErrCodeKey, Message: "pop from empty set", Shape: s.shape.name}
	}
	v := s.m.order[0]
	s.m.remove(v)
	return v, nil
}

// Clear removes all members.
func (s *Set) Clear() error {
	if err := CheckMutator(s, MutClear); err != nil {
		return err
	}
	s.m.clear()
	return nil
}

// IOr adds every member of other. In-place operators treat a nil other as
// the empty set.
func (s *Set) IOr(other *Set) error {
	if err := CheckMutator(s, MutIOr); err != nil {
		return err
	}
	for _, v := range other.Members() {
		s.m.add(v)
	}
	return nil
}

// IAnd keeps only members also in other.
func (s *Set) IAnd(other *Set) error {
	if err := CheckMutator(s, MutIAnd); err != nil {
		return err
	}
	for _, v := range s.Members() {
		if !other.Contains(v) {
			s.m.remove(v)
		}
	}
	return nil
}

// IXor keeps members in exactly one of s and other.
func (s *Set) IXor(other *Set) error {
	if err := CheckMutator(s, MutIXor); err != nil {
		return err
	}
	for _, v := range other.Members() {
		if !s.m.remove(v) {
			s.m.add(v)
		}
	}
	return nil
}

// ISub removes every member of other.
func (s *Set) ISub(other *Set) error {
	if err := CheckMutator(s, MutISub); err != nil {
		return err
	}
	for _, v := range other.Members() {
		s.m.remove(v)
	}
	return nil
}

// FrozenSet is an inherently immutable set.
type FrozenSet struct {
	m members
}

// NewFrozenSet creates a FrozenSet from vs.
func NewFrozenSet(vs ...Hashable) *FrozenSet {
	return &FrozenSet{m: newMembers(vs)}
}

func (*FrozenSet) Shape() *Shape { return FrozenSetShape }

func (f *FrozenSet) String() string { return Repr(f) }

// Len returns the number of members.
func (f *FrozenSet) Len() int { return len(f.m.order) }

// Contains reports membership.
func (f *FrozenSet) Contains(v Hashable) bool { return f.m.has(v) }

// Items yields (member, member) pairs.
func (f *FrozenSet) Items() iter.Seq2[Object, Object] { return f.m.seq() }
