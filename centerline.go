package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// buildCenterline averages corresponding rail points into midpoints and
// fills gaps so that consecutive points are never more than maxDist
// apart. Splines past the end of the shorter rail are ignored; callers
// reject such cables with checkRails.
//
// Within a spline pair, points are matched by index up to the shorter
// of the two point lists.
func buildCenterline(c *Cable, maxDist float64) []r3.Vec {
	var out []r3.Vec
	for k := 0; k < min(len(c.Rail1), len(c.Rail2)); k++ {
		a, b := c.Rail1[k].Positions, c.Rail2[k].Positions
		n := min(len(a), len(b))
		for i := 0; i < n; i++ {
			m := r3.Scale(0.5, r3.Add(a[i], b[i]))
			out = appendFilled(out, m, maxDist)
		}
	}
	return out
}

// appendFilled appends p to pts, first inserting evenly spaced points
// between the previous point and p if they are more than maxDist apart.
// A point coinciding with the previous one (where one spline ends and
// the next begins) is dropped.
func appendFilled(pts []r3.Vec, p r3.Vec, maxDist float64) []r3.Vec {
	if len(pts) == 0 {
		return append(pts, p)
	}
	prev := pts[len(pts)-1]
	d := dist(prev, p)
	if d < 1e-9 {
		return pts
	}
	if d > maxDist {
		steps := int(math.Ceil(d / maxDist))
		delta := r3.Sub(p, prev)
		for s := 1; s < steps; s++ {
			pts = append(pts, r3.Add(prev, r3.Scale(float64(s)/float64(steps), delta)))
		}
	}
	return append(pts, p)
}
