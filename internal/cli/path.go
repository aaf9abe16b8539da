package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/IljaManakov/cryostasis/internal/object"
)

// target is a resolved --path: the container holding the addressed slot
// and the last path segment naming it.
type target struct {
	container object.Object
	segment   string
}

// resolvePath walks a dotted path such as "owner.tags.0" from root.
// Mapping segments are string keys, falling back to integer keys; sequence
// segments are indexes and anything else is an attribute name.
func resolvePath(root object.Object, path string) (target, error) {
	segs := strings.Split(path, ".")
	for i, seg := range segs {
		if seg == "" {
			return target{}, fmt.Errorf("path %q has an empty segment at position %d", path, i)
		}
	}

	cur := root
	for i, seg := range segs[:len(segs)-1] {
		next, err := child(cur, seg)
		if err != nil {
			return target{}, fmt.Errorf("%s: %w", strings.Join(segs[:i+1], "."), err)
		}
		cur = next
	}
	return target{container: cur, segment: segs[len(segs)-1]}, nil
}

func child(o object.Object, seg string) (object.Object, error) {
	switch v := o.(type) {
	case *object.Dict:
		k, ok := dictKey(v, seg)
		if !ok {
			return nil, fmt.Errorf("no key %q", seg)
		}
		val, _ := v.Get(k)
		return val, nil
	case *object.List:
		i, err := index(seg)
		if err != nil {
			return nil, err
		}
		return v.Get(i)
	case *object.Tuple:
		i, err := index(seg)
		if err != nil {
			return nil, err
		}
		return v.Get(i)
	case object.Attributed:
		return v.GetAttr(seg)
	case nil:
		return nil, fmt.Errorf("cannot descend into None")
	}
	return nil, fmt.Errorf("cannot descend into %s", o.Shape().Original().Name())
}

// dictKey finds the key seg names in d. The Str key is preferred; a numeric
// segment also matches an Int key.
func dictKey(d *object.Dict, seg string) (object.Hashable, bool) {
	if _, ok := d.Get(object.Str(seg)); ok {
		return object.Str(seg), true
	}
	if n, err := strconv.ParseInt(seg, 10, 64); err == nil {
		if _, ok := d.Get(object.Int(n)); ok {
			return object.Int(n), true
		}
	}
	return object.Str(seg), false
}

func index(seg string) (int, error) {
	i, err := strconv.Atoi(seg)
	if err != nil {
		return 0, fmt.Errorf("index %q is not an integer", seg)
	}
	return i, nil
}

// set assigns v to the addressed slot.
func (t target) set(v object.Object) error {
	switch c := t.container.(type) {
	case *object.Dict:
		k, _ := dictKey(c, t.segment)
		return c.SetItem(k, v)
	case *object.List:
		i, err := index(t.segment)
		if err != nil {
			return err
		}
		return c.SetItem(i, v)
	case object.Attributed:
		return c.SetAttr(t.segment, v)
	}
	return fmt.Errorf("cannot assign into %s", t.shapeName())
}

// delete removes the addressed slot. For sets the segment names a member.
func (t target) delete() error {
	switch c := t.container.(type) {
	case *object.Dict:
		k, _ := dictKey(c, t.segment)
		return c.DelItem(k)
	case *object.List:
		i, err := index(t.segment)
		if err != nil {
			return err
		}
		return c.DelItem(i)
	case *object.Set:
		var m object.Hashable = object.Str(t.segment)
		if n, err := strconv.ParseInt(t.segment, 10, 64); err == nil && c.Contains(object.Int(n)) {
			m = object.Int(n)
		}
		return c.Remove(m)
	case object.Attributed:
		return c.DelAttr(t.segment)
	}
	return fmt.Errorf("cannot delete from %s", t.shapeName())
}

func (t target) shapeName() string {
	if t.container == nil {
		return "None"
	}
	return t.container.Shape().Original().Name()
}
