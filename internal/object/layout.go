package object

// LayoutAdapter rebinds the shape of fixed-layout objects, whose shape
// slot cannot be assigned through ordinary means.
type LayoutAdapter interface {
	// IsFixedLayout reports whether o needs the adapter to be rebound.
	IsFixedLayout(o Object) bool

	// SetSpecializedType rebinds o to s. s must be o's original shape or
	// a specialization of it.
	SetSpecializedType(o Object, s *Shape) error
}

// BuiltinLayout is the LayoutAdapter for List, Dict, Set and Struct.
type BuiltinLayout struct{}

// IsFixedLayout implements LayoutAdapter.
func (BuiltinLayout) IsFixedLayout(o Object) bool {
	switch o.(type) {
	case *List, *Dict, *Set, *Struct:
		return true
	}
	return false
}

// SetSpecializedType implements LayoutAdapter.
func (BuiltinLayout) SetSpecializedType(o Object, s *Shape) error {
	if s == nil {
		return NewInvalidArgument("nil shape")
	}
	if s.Original() != o.Shape().Original() {
		return NewInvalidArgument("shape %s is not compatible with %s", s.name, o.Shape().name)
	}
	switch v := o.(type) {
	case *List:
		v.shape = s
	case *Dict:
		v.shape = s
	case *Set:
		v.shape = s
	case *Struct:
		v.shape = s
	default:
		return NewInvalidArgument("%s is not a fixed-layout object", o.Shape().name)
	}
	return nil
}
