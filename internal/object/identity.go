package object

import "reflect"

// IdentityKey returns the key that identifies o in identity sets such as
// a traversal's visited set or a printer's active set. Pointers identify
// by address and comparable values by value.
//
// ok is false for nil and for values that cannot be map keys, such as a
// struct holding a slice. Such a value has no identity beyond the place it
// occurs, so it can never close a cycle and callers treat it as unseen.
func IdentityKey(o Object) (key Object, ok bool) {
	if o == nil || !reflect.ValueOf(o).Comparable() {
		return nil, false
	}
	return o, true
}

// IsNil reports whether o is nil or holds a nil pointer, map, slice, func
// or channel.
func IsNil(o Object) bool {
	if o == nil {
		return true
	}
	switch v := reflect.ValueOf(o); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
