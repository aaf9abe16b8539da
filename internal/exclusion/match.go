package exclusion

import (
	"reflect"

	"github.com/IljaManakov/cryostasis/internal/object"
)

// CriterionKind selects which membership a Criterion queries.
type CriterionKind int

const (
	CriterionAttr CriterionKind = iota
	CriterionItem
	CriterionSubclass
	CriterionInstance
	CriterionObject
)

var criterionNames = [...]string{
	CriterionAttr:     "attr",
	CriterionItem:     "item",
	CriterionSubclass: "subclass",
	CriterionInstance: "instance",
	CriterionObject:   "object",
}

func (k CriterionKind) String() string {
	if k >= 0 && int(k) < len(criterionNames) {
		return criterionNames[k]
	}
	return "unknown"
}

// Criterion is one query against a Set. Value is validated by Matches:
//   - attr: string or object.Str
//   - item: any object.Hashable, or a string, int or int64 key
//   - subclass: non-nil *object.Shape
//   - instance, object: non-nil object.Object
type Criterion struct {
	Kind  CriterionKind
	Value any
}

// Attr queries the attribute-name membership.
func Attr(name string) Criterion { return Criterion{Kind: CriterionAttr, Value: name} }

// Item queries the item-key membership.
func Item(key object.Object) Criterion { return Criterion{Kind: CriterionItem, Value: key} }

// Subclass queries whether sh derives from an excluded base.
func Subclass(sh *object.Shape) Criterion { return Criterion{Kind: CriterionSubclass, Value: sh} }

// Instance queries whether o is an instance of an excluded type.
func Instance(o object.Object) Criterion { return Criterion{Kind: CriterionInstance, Value: o} }

// Object queries whether o itself is excluded.
func Object(o object.Object) Criterion { return Criterion{Kind: CriterionObject, Value: o} }

// Matches reports whether any criterion is satisfied by its membership.
// It fails with INVALID_ARGUMENT when no criteria are supplied or when a
// criterion's value is not of the kind it expects. All criteria are
// validated before any is evaluated.
func (s *Set) Matches(criteria ...Criterion) (bool, error) {
	if len(criteria) == 0 {
		return false, object.NewInvalidArgument("at least one criterion must be supplied")
	}
	for _, c := range criteria {
		if err := validate(c); err != nil {
			return false, err
		}
	}
	for _, c := range criteria {
		if s.matches(c) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Set) matches(c Criterion) bool {
	switch c.Kind {
	case CriterionAttr:
		name, _ := attrName(c.Value)
		return s.ContainsAttr(name)
	case CriterionItem:
		k, _ := itemValue(c.Value)
		return s.ContainsItem(k)
	case CriterionSubclass:
		return s.ContainsSubclass(c.Value.(*object.Shape))
	case CriterionInstance:
		return s.ContainsInstance(c.Value.(object.Object))
	case CriterionObject:
		return s.ContainsObject(c.Value.(object.Object))
	}
	return false
}

func validate(c Criterion) error {
	var ok bool
	switch c.Kind {
	case CriterionAttr:
		_, ok = attrName(c.Value)
	case CriterionItem:
		_, ok = itemValue(c.Value)
	case CriterionSubclass:
		sh, isShape := c.Value.(*object.Shape)
		ok = isShape && sh != nil
	case CriterionInstance, CriterionObject:
		ok = c.Value != nil && !isNilPointer(c.Value)
		if ok {
			_, ok = c.Value.(object.Object)
		}
	default:
		return object.NewInvalidArgument("unknown criterion kind %d", int(c.Kind))
	}
	if !ok {
		return object.NewInvalidArgument("%T is not a valid %s criterion", c.Value, c.Kind)
	}
	return nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func attrName(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case object.Str:
		return string(x), true
	}
	return "", false
}

func itemValue(v any) (object.Object, bool) {
	switch x := v.(type) {
	case string:
		return object.Str(x), true
	case int:
		return object.Int(x), true
	case int64:
		return object.Int(x), true
	case object.Hashable:
		return x, !object.IsNil(x)
	}
	return nil, false
}
