package typecache

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/IljaManakov/cryostasis/internal/metrics"
	"github.com/IljaManakov/cryostasis/internal/object"
)

func TestGetOrCreateReusesShape(t *testing.T) {
	c := New(nil)

	a := c.GetOrCreate(object.ListShape, true, true)
	b := c.GetOrCreate(object.ListShape, true, true)
	assert.Same(t, a, b)
	assert.Equal(t, 1, c.Len())

	other := c.GetOrCreate(object.ListShape, true, false)
	assert.NotSame(t, a, other)
	assert.Equal(t, 2, c.Len())

	runtime.KeepAlive(a)
	runtime.KeepAlive(other)
}

func TestSpecializedShape(t *testing.T) {
	c := New(nil)
	special := c.GetOrCreate(object.DictShape, false, true)

	assert.True(t, special.IsSpecialized())
	assert.Same(t, object.DictShape, special.Original())
	assert.Equal(t, object.KindMapping, special.Kind())
	assert.False(t, special.Guard().FreezeAttributes())
	assert.True(t, special.Guard().FreezeItems())
	assert.Equal(t, "Frozen(x)", display("x"))
}

func TestMutatorOverrides(t *testing.T) {
	tests := []struct {
		name  string
		shape *object.Shape
		want  []object.Mutator
		not   []object.Mutator
	}{
		{
			name:  "sequence",
			shape: object.ListShape,
			want: []object.Mutator{object.MutInsert, object.MutAppend, object.MutClear, object.MutReverse,
				object.MutExtend, object.MutPop, object.MutRemove, object.MutIAdd, object.MutIMul},
			not: []object.Mutator{object.MutUpdate, object.MutAdd},
		},
		{
			name:  "mapping",
			shape: object.DictShape,
			want: []object.Mutator{object.MutPop, object.MutPopItem, object.MutClear,
				object.MutUpdate, object.MutSetDefault, object.MutIOr},
			not: []object.Mutator{object.MutAppend, object.MutAdd},
		},
		{
			name:  "set",
			shape: object.SetShape,
			want: []object.Mutator{object.MutAdd, object.MutDiscard, object.MutRemove, object.MutPop,
				object.MutClear, object.MutIOr, object.MutIAnd, object.MutIXor, object.MutISub},
			not: []object.Mutator{object.MutAppend, object.MutUpdate},
		},
		{
			name:  "record",
			shape: object.RecordShape,
			not:   []object.Mutator{object.MutAppend, object.MutPop, object.MutAdd},
		},
	}

	c := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := c.GetOrCreate(tt.shape, true, true).Guard()
			assert.Equal(t, len(tt.want), g.Mutators())
			for _, m := range tt.want {
				assert.True(t, g.Overrides(m), "expected %s to be overridden", m)
			}
			for _, m := range tt.not {
				assert.False(t, g.Overrides(m), "expected %s to pass through", m)
			}
		})
	}
}

func TestDerivedShapeInheritsMutators(t *testing.T) {
	stack := object.NewShape("TypecacheStack", object.ListShape)
	special := New(nil).GetOrCreate(stack, true, true)

	assert.Same(t, stack, special.Original())
	assert.True(t, special.Guard().Overrides(object.MutAppend))
	assert.Equal(t, "Frozen[TypecacheStack]", special.Name())
}

// freezeLists rebinds n fresh lists that are dropped on return.
func freezeLists(t *testing.T, c *Cache, n int) {
	t.Helper()
	lists := make([]*object.List, n)
	for i := range lists {
		lists[i] = object.NewList(object.Int(i))
		special := c.GetOrCreate(lists[i].Shape(), true, true)
		require.NoError(t, object.BuiltinLayout{}.SetSpecializedType(lists[i], special))
	}
	require.Equal(t, 1, c.Len())
}

func TestTenThousandContainersShareOneShape(t *testing.T) {
	c := New(nil)

	lists := make([]*object.List, 10_000)
	for i := range lists {
		lists[i] = object.NewList(object.Int(i))
		special := c.GetOrCreate(lists[i].Shape(), true, true)
		require.NoError(t, object.BuiltinLayout{}.SetSpecializedType(lists[i], special))
	}

	first := lists[0].Shape()
	for _, l := range lists {
		require.Same(t, first, l.Shape())
	}
	assert.Equal(t, 1, c.Len())
}

func TestReclaimAfterCollection(t *testing.T) {
	m, err := metrics.New(metrics.Config{Enabled: true})
	require.NoError(t, err)
	c := New(m)

	freezeLists(t, c, 3)

	require.Eventually(t, func() bool {
		runtime.GC()
		return c.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	values := make(map[string]float64)
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				values[f.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[f.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, values["cryostasis_typecache_reclaims_total"])
	assert.Equal(t, 0.0, values["cryostasis_typecache_entries"])
	assert.Equal(t, 3.0, values["cryostasis_typecache_lookups_total"])
}

func TestConcurrentGetOrCreate(t *testing.T) {
	c := New(nil)
	const workers = 32

	results := make([]*object.Shape, workers)
	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			results[i] = c.GetOrCreate(object.SetShape, true, true)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, s := range results[1:] {
		assert.Same(t, results[0], s)
	}
	assert.Equal(t, 1, c.Len())
}
