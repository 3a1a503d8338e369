package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTangentRay(t *testing.T) {
	r, ok := tangentRay([]r3.Vec{{}, {X: 1}, {X: 3}})
	require.True(t, ok)
	assert.Equal(t, r3.Vec{X: 3}, r.Origin)
	assert.Equal(t, r3.Vec{X: 1}, r.Dir)

	_, ok = tangentRay([]r3.Vec{{X: 1}})
	assert.False(t, ok)
	_, ok = tangentRay([]r3.Vec{{X: 1}, {X: 1}})
	assert.False(t, ok)
}

func TestRayDistanceAndAhead(t *testing.T) {
	r := Ray{Origin: r3.Vec{X: 1}, Dir: r3.Vec{X: 1}}
	assert.InDelta(t, 0, r.DistanceTo(r3.Vec{X: 10}), 1e-12)
	assert.InDelta(t, 0, r.DistanceTo(r3.Vec{X: -10}), 1e-12)
	assert.InDelta(t, 5, r.DistanceTo(r3.Vec{X: 4, Z: 5}), 1e-12)

	assert.True(t, r.Ahead(r3.Vec{X: 10}))
	assert.True(t, r.Ahead(r3.Vec{X: 1, Y: 3}))
	assert.False(t, r.Ahead(r3.Vec{X: -10}))
}
