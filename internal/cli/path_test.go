package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IljaManakov/cryostasis/internal/object"
)

func pathFixture() (*object.Dict, *object.List, *object.Record) {
	tags := object.NewList(object.Str("a"), object.Str("b"))
	owner := object.NewRecord(object.A("name", object.Str("ada")), object.A("tags", tags))
	root := object.NewDict(
		object.P(object.Str("owner"), owner),
		object.P(object.Int(3), object.Str("three")),
		object.P(object.Str("pair"), object.NewTuple(object.Int(1), tags)),
	)
	return root, tags, owner
}

func TestResolvePath(t *testing.T) {
	root, tags, owner := pathFixture()

	tests := []struct {
		path      string
		container object.Object
		segment   string
	}{
		{"owner", root, "owner"},
		{"owner.name", owner, "name"},
		{"owner.tags.1", tags, "1"},
		{"pair.1.0", tags, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := resolvePath(root, tt.path)
			require.NoError(t, err)
			assert.Same(t, tt.container, got.container)
			assert.Equal(t, tt.segment, got.segment)
		})
	}
}

func TestResolvePathErrors(t *testing.T) {
	root, _, _ := pathFixture()

	for path, want := range map[string]string{
		"":               "empty segment",
		"owner.":         "empty segment",
		"missing.x":      `missing: no key "missing"`,
		"owner.tags.x.y": `index "x" is not an integer`,
		"owner.tags.5.y": "INDEX_OUT_OF_RANGE",
		"owner.age.x":    "NO_ATTRIBUTE",
		"3.x.y":          "cannot descend into Str",
	} {
		t.Run(path, func(t *testing.T) {
			_, err := resolvePath(root, path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), want)
		})
	}
}

func TestDictKeyFallsBackToInt(t *testing.T) {
	root, _, _ := pathFixture()

	k, ok := dictKey(root, "3")
	require.True(t, ok)
	assert.Equal(t, object.Int(3), k)

	k, ok = dictKey(root, "4")
	assert.False(t, ok)
	assert.Equal(t, object.Str("4"), k, "unknown keys are added as strings")
}

func TestTargetSetAndDelete(t *testing.T) {
	root, tags, owner := pathFixture()

	tgt, err := resolvePath(root, "owner.tags.0")
	require.NoError(t, err)
	require.NoError(t, tgt.set(object.Str("z")))
	assert.Equal(t, "['z', 'b']", object.Repr(tags))

	tgt, err = resolvePath(root, "owner.name")
	require.NoError(t, err)
	require.NoError(t, tgt.delete())
	_, err = owner.GetAttr("name")
	assert.ErrorIs(t, err, object.ErrNoAttribute)

	tgt, err = resolvePath(root, "3")
	require.NoError(t, err)
	require.NoError(t, tgt.delete())
	_, ok := root.Get(object.Int(3))
	assert.False(t, ok)

	tgt, err = resolvePath(root, "pair.0")
	require.NoError(t, err)
	assert.ErrorContains(t, tgt.set(object.Int(2)), "cannot assign into Tuple")
	assert.ErrorContains(t, tgt.delete(), "cannot delete from Tuple")
}

func TestTargetDeleteSetMember(t *testing.T) {
	s := object.NewSet(object.Str("x"), object.Int(2))
	root := object.NewDict(object.P(object.Str("s"), s))

	for _, seg := range []string{"x", "2"} {
		tgt, err := resolvePath(root, "s."+seg)
		require.NoError(t, err)
		require.NoError(t, tgt.delete())
	}
	assert.Equal(t, 0, s.Len())
}
