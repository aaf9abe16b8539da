package testutil

import "github.com/IljaManakov/cryostasis/internal/object"

// DummyShape is a plain user-defined record shape used across tests.
var DummyShape = object.NewShape("Dummy", object.RecordShape)

// NewDummy builds a Dummy record with a single "value" attribute.
func NewDummy(value object.Object) *object.Record {
	r, err := object.NewRecordOf(DummyShape, object.A("value", value))
	if err != nil {
		panic(err)
	}
	return r
}

// Cycle builds two lists that contain each other and returns both.
func Cycle() (*object.List, *object.List) {
	a := object.NewList()
	b := object.NewList(a)
	if err := a.Append(b); err != nil {
		panic(err)
	}
	return a, b
}

// NestedGraph mirrors a typical deep structure:
//
//	{"a": {1, 2, 3},
//	 "b": [true, Dummy(value="hello", list=[1, 2, 3], dict={"a": 1, "b": 2})],
//	 "c": Dummy(value="world"),
//	 "d": <function handler>,
//	 "g": Record()}
//
// The returned Graph exposes the interesting inner nodes by name.
func NestedGraph() *Graph {
	g := &Graph{
		Set:       object.NewSet(object.Int(1), object.Int(2), object.Int(3)),
		InnerList: object.NewList(object.Int(1), object.Int(2), object.Int(3)),
		InnerDict: object.NewDict(object.P(object.Str("a"), object.Int(1)), object.P(object.Str("b"), object.Int(2))),
		Func:      object.NewFunc("handler", nil),
		Empty:     object.NewRecord(),
	}
	g.Modified = NewDummy(object.Str("hello"))
	mustSet(g.Modified, "list", g.InnerList)
	mustSet(g.Modified, "dict", g.InnerDict)
	g.World = NewDummy(object.Str("world"))
	g.List = object.NewList(object.Bool(true), g.Modified)
	g.Root = object.NewDict(
		object.P(object.Str("a"), g.Set),
		object.P(object.Str("b"), g.List),
		object.P(object.Str("c"), g.World),
		object.P(object.Str("d"), g.Func),
		object.P(object.Str("g"), g.Empty),
	)
	return g
}

// Graph holds the nodes of NestedGraph.
type Graph struct {
	Root      *object.Dict
	Set       *object.Set
	List      *object.List
	Modified  *object.Record
	InnerList *object.List
	InnerDict *object.Dict
	World     *object.Record
	Func      *object.Func
	Empty     *object.Record
}

// Containers returns every mutable node in the graph.
func (g *Graph) Containers() []object.Object {
	return []object.Object{g.Root, g.Set, g.List, g.Modified, g.InnerList, g.InnerDict, g.World, g.Func, g.Empty}
}

func mustSet(r *object.Record, name string, v object.Object) {
	if err := r.SetAttr(name, v); err != nil {
		panic(err)
	}
}
