package object

import "iter"

// Object is anything cryostasis can freeze.
type Object interface {
	Shape() *Shape
}

// Hashable objects may be used as Dict keys and Set members.
// Scalars hash by value, containers by identity.
type Hashable interface {
	Object
	hashable()
}

// Rebindable objects accept a new shape through ordinary assignment.
type Rebindable interface {
	Object
	SetShape(*Shape)
}

// Attributed objects expose named attributes.
type Attributed interface {
	Object
	GetAttr(name string) (Object, error)
	SetAttr(name string, v Object) error
	DelAttr(name string) error
}

// AttrEnumerator objects can enumerate their attribute values.
type AttrEnumerator interface {
	Object
	Attrs() iter.Seq2[string, Object]
}

// ItemEnumerator objects can enumerate their items as key/value pairs.
// Sequences yield (index, element), mappings (key, value) and sets
// (member, member).
type ItemEnumerator interface {
	Object
	Items() iter.Seq2[Object, Object]
}

// Attr is a named attribute value for record construction.
type Attr struct {
	Name  string
	Value Object
}

// A is a shorthand for Attr.
// Example: NewRecord(A("name", Str("cart")), A("count", Int(5)))
func A(name string, v Object) Attr {
	return Attr{Name: name, Value: v}
}

// Pair is a key/value pair for Dict construction.
type Pair struct {
	Key   Hashable
	Value Object
}

// P is a shorthand for Pair.
func P(key Hashable, v Object) Pair {
	return Pair{Key: key, Value: v}
}

// orNone maps a nil Object to None so containers never hold nil.
func orNone(v Object) Object {
	if v == nil {
		return None{}
	}
	return v
}

func (*List) hashable()       {}
func (*Dict) hashable()       {}
func (*Set) hashable()        {}
func (*Record) hashable()     {}
func (*Func) hashable()       {}
func (*Tuple) hashable()      {}
func (*FrozenSet) hashable()  {}
func (*EnumMember) hashable() {}
func (*Struct) hashable()     {}
