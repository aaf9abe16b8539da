package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IljaManakov/cryostasis/internal/object"
)

func TestDecodeJSON(t *testing.T) {
	o, err := Decode([]byte(`{"z": [1, 2.5, "s", true, null], "a": {"n": 1e3}}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, `{'z': [1, 2.5, 's', True, None], 'a': {'n': 1000.0}}`, object.Repr(o))
	d := o.(*object.Dict)
	assert.Equal(t, []object.Hashable{object.Str("z"), object.Str("a")}, d.Keys(), "member order is kept")
}

func TestDecodeJSONBigInt(t *testing.T) {
	o, err := Decode([]byte(`[9223372036854775807, 9223372036854775808]`), FormatJSON)
	require.NoError(t, err)
	l := o.(*object.List)

	first, _ := l.Get(0)
	second, _ := l.Get(1)
	assert.Equal(t, object.Int(9223372036854775807), first)
	assert.IsType(t, object.Float(0), second, "overflowing integers fall back to float")
}

func TestDecodeJSONErrors(t *testing.T) {
	for _, doc := range []string{``, `{"a": }`, `[1, 2`, `[1] [2]`} {
		_, err := Decode([]byte(doc), FormatJSON)
		var de *DecodeError
		require.ErrorAs(t, err, &de, "document %q", doc)
		assert.Equal(t, FormatJSON, de.Format)
	}
}

func TestDecodeNormalizesStrings(t *testing.T) {
	// e followed by a combining acute accent
	o, err := Decode([]byte("{\"cafe\u0301\": \"cafe\u0301\"}"), FormatJSON)
	require.NoError(t, err)

	v, ok := o.(*object.Dict).Get(object.Str("caf\u00e9"))
	require.True(t, ok)
	assert.Equal(t, object.Str("caf\u00e9"), v)
}

func TestDecodeYAML(t *testing.T) {
	doc := `
name: cart
count: 5
ratio: 0.5
enabled: yes
missing: ~
tags: [a, b]
blob: !!binary aGVsbG8=
members: !!set {x, y}
point: !tuple [1, 2]
owner: !record
  id: 7
  name: ada
`
	o, err := Decode([]byte(doc), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t,
		`{'name': 'cart', 'count': 5, 'ratio': 0.5, 'enabled': 'yes', 'missing': None, 'tags': ['a', 'b'], `+
			`'blob': b'hello', 'members': {'x', 'y'}, 'point': (1, 2), 'owner': Record(id=7, name='ada')}`,
		object.Repr(o))
}

func TestDecodeYAMLAliasesShareIdentity(t *testing.T) {
	doc := `
base: &base [1, 2]
copy: *base
`
	o, err := Decode([]byte(doc), FormatYAML)
	require.NoError(t, err)
	d := o.(*object.Dict)

	base, _ := d.Get(object.Str("base"))
	cp, _ := d.Get(object.Str("copy"))
	assert.Same(t, base.(*object.List), cp.(*object.List))
}

func TestDecodeYAMLCycle(t *testing.T) {
	doc := `&loop
- 1
- *loop
`
	o, err := Decode([]byte(doc), FormatYAML)
	require.NoError(t, err)

	l := o.(*object.List)
	inner, err := l.Get(1)
	require.NoError(t, err)
	assert.Same(t, l, inner.(*object.List))
	assert.Equal(t, "[1, [...]]", object.Repr(l))
}

func TestDecodeYAMLMergeKeys(t *testing.T) {
	doc := `
defaults: &defaults
  retries: 3
  timeout: 10
service:
  <<: *defaults
  timeout: 30
`
	o, err := Decode([]byte(doc), FormatYAML)
	require.NoError(t, err)

	svc, _ := o.(*object.Dict).Get(object.Str("service"))
	assert.Equal(t, "{'retries': 3, 'timeout': 30}", object.Repr(svc))
}

func TestDecodeYAMLErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":         "a: [1, 2",
		"custom tag":     "a: !color red",
		"record key":     "!record {1: a}",
		"self tuple":     "&t !tuple [*t]",
		"bad merge":      "a:\n  <<: 5\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc), FormatYAML)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, FormatYAML, de.Format)
		})
	}
}

func TestDecodeYAMLEmpty(t *testing.T) {
	o, err := Decode(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, object.None{}, o)
}

func TestDecodeCUE(t *testing.T) {
	doc := `
#Item: {name: string, qty: int & >0}
items: [...#Item]
items: [{name: "apple", qty: 2}, {name: "pear", qty: 1}]
total: items[0].qty + items[1].qty
`
	o, err := Decode([]byte(doc), FormatCUE)
	require.NoError(t, err)
	assert.Equal(t, "{'items': [{'name': 'apple', 'qty': 2}, {'name': 'pear', 'qty': 1}], 'total': 3}", object.Repr(o))
}

func TestDecodeCUEErrors(t *testing.T) {
	for _, doc := range []string{`a: int`, `a: 1 & 2`, `a: {`} {
		_, err := Decode([]byte(doc), FormatCUE)
		var de *DecodeError
		require.ErrorAs(t, err, &de, "document %q", doc)
		assert.Equal(t, FormatCUE, de.Format)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yml")
	require.NoError(t, os.WriteFile(path, []byte("x: [1]\n"), 0o644))

	o, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{'x': [1]}", object.Repr(o))

	_, err = LoadFile(filepath.Join(dir, "doc.txt"))
	assert.ErrorContains(t, err, "unsupported document format")

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.json": FormatJSON,
		"a.YAML": FormatYAML,
		"a.yml":  FormatYAML,
		"a.cue":  FormatCUE,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
}
