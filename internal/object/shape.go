package object

import (
	"fmt"
	"sync"
)

// Kind is the structural family of a shape.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
	KindSet
	KindRecord
	KindFunc
	KindEnum
	KindStruct
)

var kindNames = [...]string{
	KindScalar:   "scalar",
	KindSequence: "sequence",
	KindMapping:  "mapping",
	KindSet:      "set",
	KindRecord:   "record",
	KindFunc:     "func",
	KindEnum:     "enum",
	KindStruct:   "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape describes the behavior of an object: its name, structural kind,
// base shape and, for specialized shapes, the Guard that denies mutation.
//
// Shapes are compared by pointer identity.
type Shape struct {
	name        string
	kind        Kind
	base        *Shape
	immutable   bool
	unsupported bool
	guard       *Guard
	repr        func(Object) string
}

// ShapeOption configures a shape created with NewShape.
type ShapeOption func(*Shape)

// WithRepr installs a custom representation for instances of the shape.
// It is inherited by derived shapes.
func WithRepr(fn func(Object) string) ShapeOption {
	return func(s *Shape) { s.repr = fn }
}

// NewShape derives a new shape from base. The new shape inherits the
// base's kind and flags, and instances of it are instances of base.
// A nil base derives from RecordShape. The shape is registered under name
// for LookupShape unless the name is already taken.
//
// NewShape panics if base is a specialized shape.
func NewShape(name string, base *Shape, opts ...ShapeOption) *Shape {
	if base == nil {
		base = RecordShape
	}
	if base.IsSpecialized() {
		panic(fmt.Sprintf("object: cannot derive shape %q from specialized shape %s", name, base.name))
	}
	s := &Shape{
		name:        name,
		kind:        base.kind,
		base:        base,
		immutable:   base.immutable,
		unsupported: base.unsupported,
	}
	for _, opt := range opts {
		opt(s)
	}
	register(s)
	return s
}

// Specialize builds the specialized shape that composes g with orig.
// The guard is consulted before orig's behavior on every mutation entry
// point. Callers normally go through a type cache rather than calling this
// directly, so that equal (orig, flags) pairs share one shape.
func Specialize(orig *Shape, g *Guard) *Shape {
	return &Shape{
		name:  "Frozen[" + orig.name + "]",
		kind:  orig.kind,
		base:  orig,
		guard: g,
	}
}

// Name returns the shape name.
func (s *Shape) Name() string { return s.name }

// Kind returns the structural family.
func (s *Shape) Kind() Kind { return s.kind }

// Base returns the parent shape, or nil for root shapes.
func (s *Shape) Base() *Shape { return s.base }

// Immutable reports whether instances are inherently immutable.
func (s *Shape) Immutable() bool { return s.immutable }

// Unsupported reports whether instances cannot be frozen.
func (s *Shape) Unsupported() bool { return s.unsupported }

// Guard returns the mutation guard, or nil if s is not specialized.
func (s *Shape) Guard() *Guard { return s.guard }

// IsSpecialized reports whether s is a frozen shape.
func (s *Shape) IsSpecialized() bool { return s.guard != nil }

// Original returns the shape a specialized shape was built from, or s.
func (s *Shape) Original() *Shape {
	if s.guard != nil {
		return s.base
	}
	return s
}

// IsSubshapeOf reports whether s is other or derives from it.
func (s *Shape) IsSubshapeOf(other *Shape) bool {
	for cur := s; cur != nil; cur = cur.base {
		if cur == other {
			return true
		}
	}
	return false
}

func (s *Shape) String() string { return s.name }

// reprFunc returns the nearest custom repr on the chain, skipping guards.
func (s *Shape) reprFunc() func(Object) string {
	for cur := s; cur != nil; cur = cur.base {
		if cur.repr != nil {
			return cur.repr
		}
	}
	return nil
}

// IsInstance reports whether o's shape is s or derives from s.
func IsInstance(o Object, s *Shape) bool {
	if o == nil {
		return false
	}
	return o.Shape().IsSubshapeOf(s)
}

func newRoot(name string, kind Kind, immutable bool) *Shape {
	s := &Shape{name: name, kind: kind, immutable: immutable}
	register(s)
	return s
}

// Built-in shapes.
var (
	NoneShape      = newRoot("None", KindScalar, true)
	BoolShape      = newRoot("Bool", KindScalar, true)
	IntShape       = newRoot("Int", KindScalar, true)
	FloatShape     = newRoot("Float", KindScalar, true)
	StrShape       = newRoot("Str", KindScalar, true)
	BytesShape     = newRoot("Bytes", KindScalar, true)
	TupleShape     = newRoot("Tuple", KindSequence, true)
	FrozenSetShape = newRoot("FrozenSet", KindSet, true)

	ListShape   = newRoot("List", KindSequence, false)
	DictShape   = newRoot("Dict", KindMapping, false)
	SetShape    = newRoot("Set", KindSet, false)
	RecordShape = newRoot("Record", KindRecord, false)
	FuncShape   = newRoot("Func", KindFunc, false)
	StructShape = newRoot("Struct", KindStruct, false)
	EnumShape   = func() *Shape {
		s := newRoot("Enum", KindEnum, false)
		s.unsupported = true
		return s
	}()
)

var registry = struct {
	sync.RWMutex
	byName map[string]*Shape
}{byName: make(map[string]*Shape)}

func register(s *Shape) {
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.byName[s.name]; !ok {
		registry.byName[s.name] = s
	}
}

// LookupShape returns the shape registered under name.
func LookupShape(name string) (*Shape, bool) {
	registry.RLock()
	defer registry.RUnlock()
	s, ok := registry.byName[name]
	return s, ok
}

// constructible checks that shape may build a new instance of family.
func constructible(shape, family *Shape) error {
	if shape == nil {
		return NewInvalidArgument("nil shape")
	}
	if shape.IsSpecialized() {
		return &Error{
			Code:    ErrCodeNotConstructible,
			Message: "frozen shapes cannot construct instances",
			Shape:   shape.name,
		}
	}
	if !shape.IsSubshapeOf(family) {
		return NewInvalidArgument("shape %s does not derive from %s", shape.name, family.name)
	}
	return nil
}
