package cryostasis_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IljaManakov/cryostasis"
	"github.com/IljaManakov/cryostasis/internal/testutil"
)

func TestDeepFreezeRoundTrip(t *testing.T) {
	items := cryostasis.NewList(cryostasis.Int(1), cryostasis.Int(2))
	cart := cryostasis.NewDict(cryostasis.P(cryostasis.Str("items"), items))

	got := cryostasis.DeepFreeze(cart)
	assert.Same(t, cart, got, "freezing returns the same object")
	assert.True(t, cryostasis.IsFrozen(cart))
	assert.True(t, cryostasis.IsFrozen(items))
	assert.Equal(t, "Frozen({'items': Frozen([1, 2])})", cryostasis.Repr(cart))

	err := items.Append(cryostasis.Int(3))
	assert.True(t, cryostasis.IsImmutableError(err), spew.Sdump(err))
	assert.ErrorIs(t, cart.SetItem(cryostasis.Str("x"), cryostasis.None{}), cryostasis.ErrImmutable)

	cryostasis.DeepThaw(cart)
	assert.False(t, cryostasis.IsFrozen(cart))
	require.NoError(t, items.Append(cryostasis.Int(3)))
	assert.Equal(t, "{'items': [1, 2, 3]}", cryostasis.Repr(cart))
}

func TestFreezeIsShallow(t *testing.T) {
	inner := cryostasis.NewList()
	outer := cryostasis.Freeze(cryostasis.NewList(inner))

	assert.True(t, cryostasis.IsFrozen(outer))
	assert.False(t, cryostasis.IsFrozen(inner))
	assert.NoError(t, inner.Append(cryostasis.Int(1)))

	cryostasis.Thaw(outer)
	assert.False(t, cryostasis.IsFrozen(outer))
}

func TestFreezeOptions(t *testing.T) {
	rec := cryostasis.NewRecord(cryostasis.A("name", cryostasis.Str("ada")))
	cryostasis.Freeze(rec, cryostasis.FreezeAttributes(false))

	require.NoError(t, rec.SetAttr("name", cryostasis.Str("grace")))
	cryostasis.Thaw(rec)
}

func TestDeepFreezeExclusions(t *testing.T) {
	cache := cryostasis.NewDict()
	rec := cryostasis.NewRecord(
		cryostasis.A("cache", cache),
		cryostasis.A("tags", cryostasis.NewSet(cryostasis.Str("a"))),
	)

	excl := cryostasis.NewExclusionSet(cryostasis.ExcludeAttrs("cache"))
	cryostasis.DeepFreeze(rec, cryostasis.Exclude(excl))
	defer cryostasis.DeepThaw(rec)

	assert.True(t, cryostasis.IsFrozen(rec))
	assert.False(t, cryostasis.IsFrozen(cache))
}

func TestSetDefault(t *testing.T) {
	rec := testutil.NewWarnRecorder()
	cryostasis.SetDefault(cryostasis.New(cryostasis.WithSink(rec)))
	t.Cleanup(func() { cryostasis.SetDefault(nil) })

	color := cryostasis.NewEnum("FacadeColor", "RED")
	cryostasis.Freeze(color)

	assert.Equal(t, []string{"Skipping freeze of unsupported object"}, rec.Messages())
	assert.False(t, cryostasis.IsFrozen(color))
}

func TestDefaultIsShared(t *testing.T) {
	assert.Same(t, cryostasis.Default(), cryostasis.Default())
}

func TestTypedNilArguments(t *testing.T) {
	var l *cryostasis.List

	require.NotPanics(t, func() {
		assert.Nil(t, cryostasis.Freeze(l))
		assert.Nil(t, cryostasis.DeepFreeze(l))
		assert.Nil(t, cryostasis.Thaw(l))
		assert.Nil(t, cryostasis.DeepThaw(l))
	})
	assert.False(t, cryostasis.IsFrozen(l))
}
