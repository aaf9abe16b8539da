// Package typecache memoizes specialized (frozen) shapes.
//
// Freezing ten thousand lists with the same flags must not build ten
// thousand shapes, so the cache hands out one specialized shape per
// (original shape, freezeAttributes, freezeItems) key. Entries are held
// through weak pointers: once no frozen object references a specialized
// shape anymore, the garbage collector reclaims it and a cleanup callback
// drops the stale entry.
package typecache

import (
	"runtime"
	"sync"
	"weak"

	"github.com/IljaManakov/cryostasis/internal/metrics"
	"github.com/IljaManakov/cryostasis/internal/object"
)

type key struct {
	shape            *object.Shape
	freezeAttributes bool
	freezeItems      bool
}

type entry struct {
	key key
	ptr weak.Pointer[object.Shape]
}

// Cache is safe for concurrent use. The zero value is not usable; call New.
type Cache struct {
	mu      sync.Mutex
	entries map[key]weak.Pointer[object.Shape]
	metrics *metrics.Metrics
}

// New creates an empty cache. m may be nil.
func New(m *metrics.Metrics) *Cache {
	return &Cache{
		entries: make(map[key]weak.Pointer[object.Shape]),
		metrics: m,
	}
}

// GetOrCreate returns the specialized shape for shape and the two flags,
// building it on first use. Lookup and insert happen under one lock, so
// concurrent callers asking for the same key observe the same shape.
func (c *Cache) GetOrCreate(shape *object.Shape, freezeAttributes, freezeItems bool) *object.Shape {
	k := key{shape: shape, freezeAttributes: freezeAttributes, freezeItems: freezeItems}

	c.mu.Lock()
	defer c.mu.Unlock()

	if wp, ok := c.entries[k]; ok {
		if special := wp.Value(); special != nil {
			c.metrics.CacheHit()
			return special
		}
	}

	g := object.NewGuard(freezeAttributes, freezeItems, mutatorsFor(shape), display)
	special := object.Specialize(shape, g)
	wp := weak.Make(special)
	c.entries[k] = wp
	runtime.AddCleanup(special, c.reclaim, entry{key: k, ptr: wp})

	c.metrics.CacheMiss()
	c.metrics.SetCacheEntries(len(c.entries))
	return special
}

// reclaim runs after a specialized shape was collected. A later
// GetOrCreate may already have replaced the entry with a fresh shape,
// which must survive.
func (c *Cache) reclaim(e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.entries[e.key]; ok && cur == e.ptr {
		delete(c.entries, e.key)
		c.metrics.CacheReclaim()
		c.metrics.SetCacheEntries(len(c.entries))
	}
}

// Len returns the number of entries, including ones whose shape was
// collected but whose cleanup has not run yet.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func display(s string) string {
	return "Frozen(" + s + ")"
}

var (
	sequenceMutators = []object.Mutator{
		object.MutInsert, object.MutAppend, object.MutClear, object.MutReverse,
		object.MutExtend, object.MutPop, object.MutRemove, object.MutIAdd, object.MutIMul,
	}
	mappingMutators = []object.Mutator{
		object.MutPop, object.MutPopItem, object.MutClear,
		object.MutUpdate, object.MutSetDefault, object.MutIOr,
	}
	setMutators = []object.Mutator{
		object.MutAdd, object.MutDiscard, object.MutRemove, object.MutPop, object.MutClear,
		object.MutIOr, object.MutIAnd, object.MutIXor, object.MutISub,
	}
)

// mutatorsFor returns the structural mutators to stub out for shape.
// Immutable shapes have none.
func mutatorsFor(shape *object.Shape) []object.Mutator {
	if shape.Immutable() {
		return nil
	}
	switch shape.Kind() {
	case object.KindSequence:
		return sequenceMutators
	case object.KindMapping:
		return mappingMutators
	case object.KindSet:
		return setMutators
	}
	return nil
}
