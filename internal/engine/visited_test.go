package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IljaManakov/cryostasis/internal/object"
)

func TestVisitedSet_Identity(t *testing.T) {
	v := newVisitedSet()
	a, b := object.NewList(), object.NewList()

	assert.True(t, v.Visit(a))
	assert.False(t, v.Visit(a), "same pointer seen twice")
	assert.True(t, v.Visit(b), "equal contents, different identity")
	assert.Equal(t, 2, v.Len())
}

func TestVisitedSet_ScalarsByValue(t *testing.T) {
	v := newVisitedSet()

	assert.True(t, v.Visit(object.Int(1)))
	assert.False(t, v.Visit(object.Int(1)))
	assert.True(t, v.Visit(object.Str("1")))
}

func TestVisitedSet_Fresh(t *testing.T) {
	l := object.NewList()
	newVisitedSet().Visit(l)

	assert.True(t, newVisitedSet().Visit(l), "sets are never shared between traversals")
}

func TestVisitedSet_ValuesWithoutIdentity(t *testing.T) {
	v := newVisitedSet()
	u := tagged{tags: []string{"a"}}

	assert.True(t, v.Visit(u))
	assert.True(t, v.Visit(u), "no identity key, always new")
	assert.Equal(t, 2, v.Len())
}
