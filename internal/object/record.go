package object

import (
	"iter"
	"slices"
)

// attrTable stores attributes in insertion order.
type attrTable struct {
	names []string
	vals  map[string]Object
}

func newAttrTable(attrs []Attr) attrTable {
	t := attrTable{vals: make(map[string]Object, len(attrs))}
	for _, a := range attrs {
		t.set(a.Name, a.Value)
	}
	return t
}

func (t *attrTable) get(name string) (Object, bool) {
	v, ok := t.vals[name]
	return v, ok
}

func (t *attrTable) set(name string, v Object) {
	if t.vals == nil {
		t.vals = make(map[string]Object)
	}
	if _, ok := t.vals[name]; !ok {
		t.names = append(t.names, name)
	}
	t.vals[name] = orNone(v)
}

func (t *attrTable) del(name string) bool {
	if _, ok := t.vals[name]; !ok {
		return false
	}
	delete(t.vals, name)
	t.names = slices.DeleteFunc(t.names, func(n string) bool { return n == name })
	return true
}

func (t *attrTable) seq() iter.Seq2[string, Object] {
	return func(yield func(string, Object) bool) {
		for _, n := range t.names {
			if !yield(n, t.vals[n]) {
				return
			}
		}
	}
}

// Record is a general object with dynamic named attributes.
type Record struct {
	shape *Shape
	attrs attrTable
}

// NewRecord creates a Record with RecordShape.
func NewRecord(attrs ...Attr) *Record {
	return &Record{shape: RecordShape, attrs: newAttrTable(attrs)}
}

// NewRecordOf creates a Record whose shape derives from RecordShape.
func NewRecordOf(shape *Shape, attrs ...Attr) (*Record, error) {
	if err := constructible(shape, RecordShape); err != nil {
		return nil, err
	}
	r := NewRecord(attrs...)
	r.shape = shape
	return r, nil
}

func (r *Record) Shape() *Shape { return r.shape }

// SetShape rebinds the record to s.
func (r *Record) SetShape(s *Shape) { r.shape = s }

func (r *Record) String() string { return Repr(r) }

// GetAttr returns the named attribute.
func (r *Record) GetAttr(name string) (Object, error) {
	if v, ok := r.attrs.get(name); ok {
		return v, nil
	}
	return nil, newNoAttribute(r.shape, name)
}

// SetAttr sets the named attribute, creating it if needed.
func (r *Record) SetAttr(name string, v Object) error {
	if err := Check(r, AccessSetAttr); err != nil {
		return err
	}
	r.attrs.set(name, v)
	return nil
}

// DelAttr removes the named attribute.
func (r *Record) DelAttr(name string) error {
	if err := Check(r, AccessDelAttr); err != nil {
		return err
	}
	if !r.attrs.del(name) {
		return newNoAttribute(r.shape, name)
	}
	return nil
}

// Attrs yields attributes in insertion order.
func (r *Record) Attrs() iter.Seq2[string, Object] { return r.attrs.seq() }

// AttrNames returns attribute names in insertion order.
func (r *Record) AttrNames() []string { return slices.Clone(r.attrs.names) }

// Func is a callable object that can carry attributes.
type Func struct {
	shape *Shape
	name  string
	fn    func(args ...Object) (Object, error)
	attrs attrTable
}

// NewFunc wraps fn as a callable object.
func NewFunc(name string, fn func(args ...Object) (Object, error)) *Func {
	return &Func{shape: FuncShape, name: name, fn: fn}
}

func (f *Func) Shape() *Shape { return f.shape }

// SetShape rebinds the function to s.
func (f *Func) SetShape(s *Shape) { f.shape = s }

func (f *Func) String() string { return Repr(f) }

// Name returns the function name.
func (f *Func) Name() string { return f.name }

// Call invokes the function. Calling is never guarded.
func (f *Func) Call(args ...Object) (Object, error) {
	if f.fn == nil {
		return None{}, nil
	}
	return f.fn(args...)
}

// GetAttr returns the named attribute.
func (f *Func) GetAttr(name string) (Object, error) {
	if v, ok := f.attrs.get(name); ok {
		return v, nil
	}
	return nil, newNoAttribute(f.shape, name)
}

// SetAttr sets the named attribute.
func (f *Func) SetAttr(name string, v Object) error {
	if err := Check(f, AccessSetAttr); err != nil {
		return err
	}
	f.attrs.set(name, v)
	return nil
}

// DelAttr removes the named attribute.
func (f *Func) DelAttr(name string) error {
	if err := Check(f, AccessDelAttr); err != nil {
		return err
	}
	if !f.attrs.del(name) {
		return newNoAttribute(f.shape, name)
	}
	return nil
}

// Attrs yields attributes in insertion order.
func (f *Func) Attrs() iter.Seq2[string, Object] { return f.attrs.seq() }
