package object

import (
	"fmt"
	"iter"
	"reflect"
	"sync"
)

var (
	objectType   = reflect.TypeFor[Object]()
	structShapes = struct {
		sync.Mutex
		byType map[reflect.Type]*Shape
	}{byType: make(map[reflect.Type]*Shape)}
)

// Struct adapts a pointer to a Go struct into an attribute-bearing object.
// Exported fields are its attributes. The field set is fixed, so attributes
// can be replaced but not added, and deleting one resets it to its zero
// value.
type Struct struct {
	shape *Shape
	ptr   reflect.Value
}

// NewStruct wraps ptr, which must be a non-nil pointer to a struct.
// All structs of the same Go type share one shape.
func NewStruct(ptr any) (*Struct, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, NewInvalidArgument("NewStruct requires a non-nil pointer to a struct, got %T", ptr)
	}
	return &Struct{shape: structShapeFor(rv.Elem().Type()), ptr: rv}, nil
}

// structShapeFor returns the shape shared by all structs of type t. The
// shape is created and registered under the lock, so exactly one shape is
// ever registered per type.
func structShapeFor(t reflect.Type) *Shape {
	structShapes.Lock()
	defer structShapes.Unlock()
	if s, ok := structShapes.byType[t]; ok {
		return s
	}
	s := NewShape(t.String(), StructShape)
	structShapes.byType[t] = s
	return s
}

func (s *Struct) Shape() *Shape { return s.shape }

func (s *Struct) String() string { return Repr(s) }

// Value returns the wrapped pointer.
func (s *Struct) Value() any { return s.ptr.Interface() }

// TypeName returns the unqualified Go type name.
func (s *Struct) TypeName() string { return s.ptr.Elem().Type().Name() }

func (s *Struct) field(name string) (reflect.Value, bool) {
	sf, ok := s.ptr.Elem().Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, false
	}
	return s.ptr.Elem().FieldByIndex(sf.Index), true
}

// GetAttr returns the named exported field converted to an Object.
func (s *Struct) GetAttr(name string) (Object, error) {
	f, ok := s.field(name)
	if !ok {
		return nil, newNoAttribute(s.shape, name)
	}
	v, ok := toObject(f)
	if !ok {
		return nil, NewInvalidArgument("field %s of type %s has no object form", name, f.Type())
	}
	return v, nil
}

// SetAttr assigns the named exported field.
func (s *Struct) SetAttr(name string, v Object) error {
	if err := Check(s, AccessSetAttr); err != nil {
		return err
	}
	f, ok := s.field(name)
	if !ok {
		return newNoAttribute(s.shape, name)
	}
	rv, err := fromObject(orNone(v), f.Type())
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	f.Set(rv)
	return nil
}

// DelAttr resets the named exported field to its zero value.
func (s *Struct) DelAttr(name string) error {
	if err := Check(s, AccessDelAttr); err != nil {
		return err
	}
	f, ok := s.field(name)
	if !ok {
		return newNoAttribute(s.shape, name)
	}
	f.SetZero()
	return nil
}

// Attrs yields the exported fields that have an object form.
func (s *Struct) Attrs() iter.Seq2[string, Object] {
	return func(yield func(string, Object) bool) {
		t := s.ptr.Elem().Type()
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			v, ok := toObject(s.ptr.Elem().Field(i))
			if !ok {
				continue
			}
			if !yield(sf.Name, v) {
				return
			}
		}
	}
}

// toObject converts a field value into an Object.
func toObject(rv reflect.Value) (Object, bool) {
	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			if rv.Type().Implements(objectType) {
				return None{}, true
			}
			return nil, false
		}
	}
	if rv.CanInterface() {
		if o, ok := rv.Interface().(Object); ok {
			return o, true
		}
	}
	switch rv.Kind() {
	case reflect.String:
		return Str(rv.String()), true
	case reflect.Bool:
		return Bool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(int64(rv.Uint())), true
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), true
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes()), true
		}
	}
	return nil, false
}

// fromObject converts v into a value assignable to a field of type t.
func fromObject(v Object, t reflect.Type) (reflect.Value, error) {
	vt := reflect.TypeOf(v)
	if vt.AssignableTo(t) {
		return reflect.ValueOf(v), nil
	}
	if _, isNone := v.(None); isNone {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map:
			return reflect.Zero(t), nil
		}
	}
	out := reflect.New(t).Elem()
	switch x := v.(type) {
	case Str:
		if t.Kind() == reflect.String {
			out.SetString(string(x))
			return out, nil
		}
	case Bool:
		if t.Kind() == reflect.Bool {
			out.SetBool(bool(x))
			return out, nil
		}
	case Int:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if !out.OverflowInt(int64(x)) {
				out.SetInt(int64(x))
				return out, nil
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if x >= 0 && !out.OverflowUint(uint64(x)) {
				out.SetUint(uint64(x))
				return out, nil
			}
		case reflect.Float32, reflect.Float64:
			out.SetFloat(float64(x))
			return out, nil
		}
	case Float:
		if k := t.Kind(); k == reflect.Float32 || k == reflect.Float64 {
			out.SetFloat(float64(x))
			return out, nil
		}
	case Bytes:
		if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			out.SetBytes([]byte(x))
			return out, nil
		}
	}
	return reflect.Value{}, NewInvalidArgument("cannot assign %s to %s", v.Shape().Name(), t)
}
