package engine

import "github.com/IljaManakov/cryostasis/internal/object"

// visitedSet tracks the objects one traversal has already processed.
// Identity follows object.IdentityKey: containers compare by pointer and
// scalars by value. Values without an identity key are always new. A
// visitedSet is never shared between calls.
type visitedSet struct {
	seen  map[object.Object]struct{}
	count int
}

func newVisitedSet() *visitedSet {
	return &visitedSet{seen: make(map[object.Object]struct{})}
}

// Visit marks o and reports whether it was new.
func (v *visitedSet) Visit(o object.Object) bool {
	k, ok := object.IdentityKey(o)
	if ok {
		if _, seen := v.seen[k]; seen {
			return false
		}
		v.seen[k] = struct{}{}
	}
	v.count++
	return true
}

// Len returns the number of objects visited so far.
func (v *visitedSet) Len() int { return v.count }
