package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IljaManakov/cryostasis/internal/object"
)

func TestWarnRecorder_Records(t *testing.T) {
	r := NewWarnRecorder()
	r.Warn("Skipping freeze", "shape", "Enum")
	r.Warn("second")

	assert.Equal(t, []string{"Skipping freeze", "second"}, r.Messages())
	assert.Equal(t, "Skipping freeze shape=Enum", r.Warnings()[0].String())

	r.Reset()
	assert.Empty(t, r.Messages())
}

func TestWarnRecorder_ThreadSafe(t *testing.T) {
	r := NewWarnRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Warn("w")
			}
		}()
	}
	wg.Wait()

	assert.Len(t, r.Messages(), 1000)
}

func TestFixedTraceGenerator(t *testing.T) {
	assert.Equal(t, "trace-1", NewFixedTraceGenerator("trace-1").Generate())
	assert.Equal(t, "test-trace-default", NewFixedTraceGenerator("").Generate())
}

func TestCycle(t *testing.T) {
	a, b := Cycle()

	first, err := a.Get(0)
	require.NoError(t, err)
	assert.Same(t, b, first)

	back, err := b.Get(0)
	require.NoError(t, err)
	assert.Same(t, a, back)
}

func TestNestedGraph(t *testing.T) {
	g := NestedGraph()

	v, ok := g.Root.Get(object.Str("b"))
	require.True(t, ok)
	assert.Same(t, g.List, v)

	list, err := g.Modified.GetAttr("list")
	require.NoError(t, err)
	assert.Same(t, g.InnerList, list)
	assert.True(t, object.IsInstance(g.World, DummyShape))
	assert.Len(t, g.Containers(), 9)
}
