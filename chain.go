package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// A Cable is a harness cable reconstructed from two parallel rails of
// splines. Rail1[k] and Rail2[k] are opposite sides of the same stretch
// of cable.
type Cable struct {
	Rail1, Rail2 []*Spline

	// Diameter is the separation of the rails at the start of the cable.
	Diameter float64

	Centerline []r3.Vec

	// Capped is set if chaining or stitching stopped at the step cap
	// rather than running out of continuations.
	Capped bool
}

// Start returns the entity ID of the first spline of rail 1, or 0 for a
// cable with no splines.
func (c *Cable) Start() int {
	if len(c.Rail1) == 0 {
		return 0
	}
	return c.Rail1[0].ID
}

// chainCable walks forward from the rail pair (i, partner), appending
// the next pair of splines that continue both rails, until no
// continuation exists or cfg.MaxChainSteps continuations have been
// taken. It marks every spline it takes as used.
func chainCable(splines []*Spline, i int, p pairing, used usedSet, cfg *Config) *Cable {
	c := &Cable{
		Rail1:    []*Spline{splines[i]},
		Rail2:    []*Spline{splines[p.partner]},
		Diameter: p.diameter,
	}
	used[i], used[p.partner] = true, true

	last := i
	for {
		end1 := c.Rail1[len(c.Rail1)-1].End
		end2 := c.Rail2[len(c.Rail2)-1].End
		idx1 := findContinuation(splines, last, used, end1, end2, c.Diameter, cfg)
		if idx1 < 0 {
			break
		}
		idx2 := findContinuation(splines, last, used, end2, end1, c.Diameter, cfg)
		if idx2 < 0 || idx2 == idx1 {
			break
		}
		if abs(idx1-idx2) > cfg.LocalityWindow {
			break
		}
		s1, s2 := splines[idx1], splines[idx2]
		if math.Abs(dist(s1.Start, s2.Start)-c.Diameter) >= cfg.Tolerance {
			break
		}
		if len(c.Rail1)-1 == cfg.MaxChainSteps {
			c.Capped = true
			break
		}
		c.Rail1 = append(c.Rail1, s1)
		c.Rail2 = append(c.Rail2, s2)
		used[idx1], used[idx2] = true, true
		last = idx1
	}
	return c
}

// findContinuation returns the first unused spline, scanning forward
// from just after last, that starts where this rail ends and sits one
// diameter away from where the other rail ends. It returns -1 if there
// is none.
func findContinuation(splines []*Spline, last int, used usedSet, end, otherEnd r3.Vec, diameter float64, cfg *Config) int {
	n := len(splines)
	for k := 1; k <= n; k++ {
		j := (last + k) % n
		s := splines[j]
		if used[j] || s.Empty() {
			continue
		}
		if dist(s.Start, end) < cfg.Tolerance && math.Abs(dist(s.Start, otherEnd)-diameter) < cfg.Tolerance {
			return j
		}
	}
	return -1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
