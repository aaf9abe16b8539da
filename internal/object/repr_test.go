package object

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepr(t *testing.T) {
	tests := []struct {
		name     string
		value    Object
		expected string
	}{
		{"none", None{}, "None"},
		{"nil", nil, "None"},
		{"bool", Bool(false), "False"},
		{"int", Int(-7), "-7"},
		{"float whole", Float(1), "1.0"},
		{"float frac", Float(2.5), "2.5"},
		{"float nan", Float(math.NaN()), "nan"},
		{"str", Str("hello"), "'hello'"},
		{"str with quote", Str("it's"), `"it's"`},
		{"str escapes", Str("a\nb\\"), `'a\nb\\'`},
		{"bytes", Bytes("raw"), "b'raw'"},
		{"empty tuple", NewTuple(), "()"},
		{"single tuple", NewTuple(Int(1)), "(1,)"},
		{"tuple", NewTuple(Int(1), Str("a")), "(1, 'a')"},
		{"list", NewList(Int(1), Int(2), Int(3)), "[1, 2, 3]"},
		{"dict", NewDict(P(Str("a"), Int(1)), P(Int(2), NewList())), "{'a': 1, 2: []}"},
		{"set", NewSet(Int(1), Int(2)), "{1, 2}"},
		{"empty set", NewSet(), "set()"},
		{"frozenset", NewFrozenSet(Int(1)), "frozenset({1})"},
		{"empty frozenset", NewFrozenSet(), "frozenset()"},
		{"record", NewRecord(A("value", Int(5))), "Record(value=5)"},
		{"func", NewFunc("handler", nil), "<function handler>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Repr(tt.value))
		})
	}
}

func TestReprCustomShape(t *testing.T) {
	dummy := NewShape("Dummy", RecordShape, WithRepr(func(o Object) string {
		v, _ := o.(*Record).GetAttr("value")
		return "Dummy(value=" + Repr(v) + ")"
	}))
	r, err := NewRecordOf(dummy, A("value", Int(5)))
	require.NoError(t, err)
	assert.Equal(t, "Dummy(value=5)", Repr(r))

	freezeForTest(t, r, true, true)
	assert.Equal(t, "Frozen(Dummy(value=5))", Repr(r))

	sub := NewShape("SubDummy", dummy)
	r2, err := NewRecordOf(sub, A("value", Int(6)))
	require.NoError(t, err)
	assert.Equal(t, "Dummy(value=6)", Repr(r2), "repr is inherited")
}

func TestReprCycles(t *testing.T) {
	l := NewList(Int(1))
	require.NoError(t, l.Append(l))
	assert.Equal(t, "[1, [...]]", Repr(l))

	d := NewDict()
	require.NoError(t, d.SetItem(Str("self"), d))
	assert.Equal(t, "{'self': {...}}", Repr(d))

	r := NewRecord()
	require.NoError(t, r.SetAttr("me", r))
	assert.Equal(t, "Record(me=Record(...))", Repr(r))
}

func TestReprNestedFrozen(t *testing.T) {
	inner := NewList(Int(1))
	outer := NewDict(P(Str("x"), inner))
	freezeForTest(t, inner, true, true)
	freezeForTest(t, outer, true, true)

	assert.Equal(t, "Frozen({'x': Frozen([1])})", Repr(outer))
	assert.Equal(t, Repr(outer), outer.String())
}

// unhashable is a custom object whose dynamic type cannot be a map key.
type unhashable struct{ tags []string }

var unhashableShape = NewShape("ReprUnhashable", RecordShape)

func (unhashable) Shape() *Shape { return unhashableShape }

func TestReprUnhashableCustomObject(t *testing.T) {
	v := unhashable{tags: []string{"a"}}

	var got string
	require.NotPanics(t, func() { got = Repr(NewList(v, v)) })
	assert.Equal(t, "[<ReprUnhashable object>, <ReprUnhashable object>]", got)
}

func TestReprTypedNil(t *testing.T) {
	var l *List
	var d *Dict

	assert.Equal(t, "None", Repr(l))
	assert.Equal(t, "[None]", Repr(NewList(d)))
}

func TestIdentityKey(t *testing.T) {
	l := NewList()
	k, ok := IdentityKey(l)
	require.True(t, ok)
	assert.Equal(t, Object(l), k)

	k, ok = IdentityKey(Int(3))
	require.True(t, ok)
	assert.Equal(t, Object(Int(3)), k)

	_, ok = IdentityKey(unhashable{})
	assert.False(t, ok)
	_, ok = IdentityKey(nil)
	assert.False(t, ok)

	assert.True(t, IsNil((*Record)(nil)))
	assert.False(t, IsNil(None{}))
}
