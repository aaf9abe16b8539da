package object

import (
	"iter"
	"slices"
)

// Enum is a closed set of named members. Enums and their members are
// unsupported by freezing; attempts are skipped with a diagnostic.
type Enum struct {
	shape   *Shape
	members []*EnumMember
}

// EnumMember is one member of an Enum. Members may carry attributes.
type EnumMember struct {
	enum  *Enum
	name  string
	value Int
	attrs attrTable
}

// NewEnum creates an enum whose members are numbered from 1.
func NewEnum(name string, members ...string) *Enum {
	e := &Enum{shape: NewShape(name, EnumShape)}
	for i, m := range members {
		e.members = append(e.members, &EnumMember{enum: e, name: m, value: Int(i + 1)})
	}
	return e
}

func (e *Enum) Shape() *Shape { return e.shape }

func (e *Enum) String() string { return Repr(e) }

// Name returns the enum name.
func (e *Enum) Name() string { return e.shape.name }

// Member returns the member called name, or nil.
func (e *Enum) Member(name string) *EnumMember {
	for _, m := range e.members {
		if m.name == name {
			return m
		}
	}
	return nil
}

// Members returns all members in declaration order.
func (e *Enum) Members() []*EnumMember { return slices.Clone(e.members) }

func (m *EnumMember) Shape() *Shape { return m.enum.shape }

func (m *EnumMember) String() string { return Repr(m) }

// Name returns the member name.
func (m *EnumMember) Name() string { return m.name }

// Value returns the member value.
func (m *EnumMember) Value() Int { return m.value }

// GetAttr returns the named attribute.
func (m *EnumMember) GetAttr(name string) (Object, error) {
	if v, ok := m.attrs.get(name); ok {
		return v, nil
	}
	return nil, newNoAttribute(m.Shape(), name)
}

// SetAttr sets the named attribute.
func (m *EnumMember) SetAttr(name string, v Object) error {
	if err := Check(m, AccessSetAttr); err != nil {
		return err
	}
	m.attrs.set(name, v)
	return nil
}

// DelAttr removes the named attribute.
func (m *EnumMember) DelAttr(name string) error {
	if err := Check(m, AccessDelAttr); err != nil {
		return err
	}
	if !m.attrs.del(name) {
		return newNoAttribute(m.Shape(), name)
	}
	return nil
}

// Attrs yields attributes in insertion order.
func (m *EnumMember) Attrs() iter.Seq2[string, Object] { return m.attrs.seq() }
