package object

// Equal reports structural equality. Frozen and thawed objects compare by
// content, so a frozen list equals an unfrozen list with the same elements.
// Cycles are handled by assuming equality for pairs already under
// comparison.
func Equal(a, b Object) bool {
	return equal(a, b, make(map[[2]Object]struct{}))
}

func equal(a, b Object, seen map[[2]Object]struct{}) bool {
	if a == nil || b == nil {
		return isNone(a) && isNone(b)
	}
	ka, okA := IdentityKey(a)
	kb, okB := IdentityKey(b)
	if okA && okB {
		if ka == kb {
			return true
		}
		pair := [2]Object{ka, kb}
		if _, ok := seen[pair]; ok {
			return true
		}
		seen[pair] = struct{}{}
	}

	switch x := a.(type) {
	case Int:
		switch y := b.(type) {
		case Float:
			return float64(x) == float64(y)
		case Bool:
			return x == boolInt(y)
		}
	case Float:
		switch y := b.(type) {
		case Int:
			return float64(x) == float64(y)
		case Float:
			return x == y
		}
	case Bool:
		if y, ok := b.(Int); ok {
			return boolInt(x) == y
		}
	case *List:
		if y, ok := b.(*List); ok {
			return equalSlices(x.items, y.items, seen)
		}
	case *Tuple:
		if y, ok := b.(*Tuple); ok {
			return equalSlices(x.items, y.items, seen)
		}
	case *Dict:
		y, ok := b.(*Dict)
		if !ok || len(x.keys) != len(y.keys) {
			return false
		}
		for _, k := range x.keys {
			yv, ok := y.vals[k]
			if !ok || !equal(x.vals[k], yv, seen) {
				return false
			}
		}
		return true
	case *Set:
		switch y := b.(type) {
		case *Set:
			return sameMembers(x.m, y.m)
		case *FrozenSet:
			return sameMembers(x.m, y.m)
		}
	case *FrozenSet:
		switch y := b.(type) {
		case *Set:
			return sameMembers(x.m, y.m)
		case *FrozenSet:
			return sameMembers(x.m, y.m)
		}
	case *Record:
		y, ok := b.(*Record)
		if !ok || x.shape.Original() != y.shape.Original() || len(x.attrs.names) != len(y.attrs.names) {
			return false
		}
		for _, n := range x.attrs.names {
			yv, ok := y.attrs.vals[n]
			if !ok || !equal(x.attrs.vals[n], yv, seen) {
				return false
			}
		}
		return true
	}
	return false
}

func isNone(o Object) bool {
	if o == nil {
		return true
	}
	_, ok := o.(None)
	return ok
}

func boolInt(b Bool) Int {
	if b {
		return 1
	}
	return 0
}

func equalSlices(a, b []Object, seen map[[2]Object]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(a[i], b[i], seen) {
			return false
		}
	}
	return true
}

func sameMembers(a, b members) bool {
	if len(a.order) != len(b.order) {
		return false
	}
	for _, v := range a.order {
		if !b.has(v) {
			return false
		}
	}
	return true
}
