// Package exclusion provides Set, the predicate structure that prunes which
// graph nodes a deep freeze or thaw touches.
//
// A Set holds five independent memberships: attribute names, item keys,
// base shapes (subclass test), instance shapes (instance test) and object
// identities. Criteria never cross-match: an attribute rule never satisfies
// an item query and vice versa.
package exclusion

import (
	"maps"

	"github.com/IljaManakov/cryostasis/internal/object"
)

// Set is an exclusion set. The zero value and a nil *Set are empty.
type Set struct {
	attrs   map[string]struct{}
	items   map[object.Hashable]struct{}
	bases   map[*object.Shape]struct{}
	types   map[*object.Shape]struct{}
	objects map[object.Object]struct{}
}

// Option adds members to a Set under construction.
type Option func(*Set)

// Attrs excludes attributes by name.
func Attrs(names ...string) Option {
	return func(s *Set) {
		for _, n := range names {
			add(&s.attrs, n)
		}
	}
}

// Items excludes items by key. Any hashable key may be excluded; it
// matches mapping keys, sequence indexes (Int) and set members equal to it.
func Items(keys ...object.Hashable) Option {
	return func(s *Set) {
		for _, k := range keys {
			if k != nil {
				add(&s.items, k)
			}
		}
	}
}

// Bases excludes objects whose shape derives from any of shapes when
// queried with Subclass.
func Bases(shapes ...*object.Shape) Option {
	return func(s *Set) {
		for _, sh := range shapes {
			add(&s.bases, sh)
		}
	}
}

// Types excludes objects that are instances of any of shapes.
func Types(shapes ...*object.Shape) Option {
	return func(s *Set) {
		for _, sh := range shapes {
			add(&s.types, sh)
		}
	}
}

// Objects excludes specific objects by identity. Values without an
// identity key (see object.IdentityKey) cannot be excluded this way; use
// Types instead.
func Objects(objs ...object.Object) Option {
	return func(s *Set) {
		for _, o := range objs {
			if k, ok := object.IdentityKey(o); ok {
				add(&s.objects, k)
			}
		}
	}
}

func add[K comparable](m *map[K]struct{}, k K) {
	if *m == nil {
		*m = make(map[K]struct{})
	}
	(*m)[k] = struct{}{}
}

// New creates a Set from opts.
func New(opts ...Option) *Set {
	s := &Set{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ContainsAttr reports whether the attribute name is excluded.
func (s *Set) ContainsAttr(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.attrs[name]
	return ok
}

// ContainsItem reports whether the item key is excluded. Objects that
// cannot be keys never match.
func (s *Set) ContainsItem(key object.Object) bool {
	if s == nil {
		return false
	}
	k, ok := key.(object.Hashable)
	if !ok {
		return false
	}
	_, ok = s.items[k]
	return ok
}

// ContainsSubclass reports whether sh derives from an excluded base.
func (s *Set) ContainsSubclass(sh *object.Shape) bool {
	if s == nil || sh == nil {
		return false
	}
	for b := range s.bases {
		if sh.IsSubshapeOf(b) {
			return true
		}
	}
	return false
}

// ContainsInstance reports whether o is an instance of an excluded type.
func (s *Set) ContainsInstance(o object.Object) bool {
	if s == nil || o == nil {
		return false
	}
	for t := range s.types {
		if object.IsInstance(o, t) {
			return true
		}
	}
	return false
}

// ContainsObject reports whether o itself is excluded.
func (s *Set) ContainsObject(o object.Object) bool {
	if s == nil {
		return false
	}
	k, ok := object.IdentityKey(o)
	if !ok {
		return false
	}
	_, ok = s.objects[k]
	return ok
}

// IsEmpty reports whether the set excludes nothing.
func (s *Set) IsEmpty() bool {
	return s == nil || len(s.attrs)+len(s.items)+len(s.bases)+len(s.types)+len(s.objects) == 0
}

// Clone returns an independent copy. Cloning nil yields an empty Set.
func (s *Set) Clone() *Set {
	if s == nil {
		return &Set{}
	}
	return &Set{
		attrs:   maps.Clone(s.attrs),
		items:   maps.Clone(s.items),
		bases:   maps.Clone(s.bases),
		types:   maps.Clone(s.types),
		objects: maps.Clone(s.objects),
	}
}

// Equal reports whether both sets have identical members in every field.
func (s *Set) Equal(other *Set) bool {
	a, b := s.Clone(), other.Clone()
	return sameKeys(a.attrs, b.attrs) &&
		sameKeys(a.items, b.items) &&
		sameKeys(a.bases, b.bases) &&
		sameKeys(a.types, b.types) &&
		sameKeys(a.objects, b.objects)
}

func sameKeys[K comparable](a, b map[K]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
