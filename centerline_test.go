package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// assertSpacing checks that consecutive points are at most max apart.
func assertSpacing(t *testing.T, pts []r3.Vec, max float64) {
	t.Helper()
	for i := 1; i < len(pts); i++ {
		if d := dist(pts[i-1], pts[i]); d > max+1e-9 {
			t.Errorf("points %d and %d are %v apart, want <= %v", i-1, i, d, max)
			return
		}
	}
}

func TestCenterlineMidpoints(t *testing.T) {
	c := &Cable{
		Rail1: []*Spline{newSpline(1, []r3.Vec{{}, {X: 1}})},
		Rail2: []*Spline{newSpline(2, []r3.Vec{{Y: 2}, {X: 1, Y: 2}})},
	}
	pts := buildCenterline(c, 10)
	assert.Equal(t, []r3.Vec{{Y: 1}, {X: 1, Y: 1}}, pts)
}

func TestCenterlineGapFill(t *testing.T) {
	c := &Cable{
		Rail1: []*Spline{newSpline(1, []r3.Vec{{}, {X: 1}})},
		Rail2: []*Spline{newSpline(2, []r3.Vec{{Y: 2}, {X: 1, Y: 2}})},
	}
	pts := buildCenterline(c, 0.25)
	require.Len(t, pts, 5)
	for i, p := range pts {
		assert.InDelta(t, float64(i)*0.25, p.X, 1e-12)
		assert.Equal(t, 1.0, p.Y)
	}
	assertSpacing(t, pts, 0.25)
}

func TestCenterlineJoinsSegments(t *testing.T) {
	var b stepBuilder
	b.cable(straightRails(r3.Vec{}, 30, 2), 3, 5)
	splines := splinesOf(t, &b)
	c := &Cable{
		Rail1: []*Spline{splines[0], splines[2], splines[4]},
		Rail2: []*Spline{splines[1], splines[3], splines[5]},
	}
	pts := buildCenterline(c, 0.1)
	require.NotEmpty(t, pts)
	assert.Equal(t, r3.Vec{Y: 1}, pts[0])
	assert.Equal(t, r3.Vec{X: 30, Y: 1}, pts[len(pts)-1])
	assert.GreaterOrEqual(t, len(pts), 301)
	assertSpacing(t, pts, 0.1)
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].X, pts[i-1].X, "centerline must not repeat points")
	}
}

func TestCenterlineMismatchedPointCounts(t *testing.T) {
	c := &Cable{
		Rail1: []*Spline{newSpline(1, []r3.Vec{{}, {X: 1}, {X: 2}})},
		Rail2: []*Spline{newSpline(2, []r3.Vec{{Y: 2}, {X: 1, Y: 2}})},
	}
	pts := buildCenterline(c, 10)
	assert.Len(t, pts, 2)
}

func TestCenterlineMismatchedRails(t *testing.T) {
	s := newSpline(1, []r3.Vec{{}, {X: 1}})
	c := &Cable{Rail1: []*Spline{s, s}, Rail2: []*Spline{s}}
	assert.NotPanics(t, func() { buildCenterline(c, 1) })
}
