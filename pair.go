package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// usedSet records splines that already belong to a cable. It only grows
// during one reconstruction.
type usedSet map[int]bool

// A pairing describes how spline i relates to the rest of the file.
type pairing struct {
	// startsLine is false if some other spline ends where i starts.
	startsLine bool
	// partner is the index of the spline running parallel to i at a
	// constant offset, or -1.
	partner  int
	diameter float64
}

// beginsCable reports whether spline i is the first segment of a cable.
func (p pairing) beginsCable() bool {
	return p.startsLine && p.partner >= 0
}

func dist(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// pairSpline examines spline i against every unused spline.
//
// Candidates are scanned in declaration order starting just after i and
// wrapping around, and the first parallel spline wins. Exporters write
// the two rails of a cable next to each other, so this prefers the
// nearby declaration when several splines happen to be parallel.
func pairSpline(splines []*Spline, i int, used usedSet, cfg *Config) pairing {
	p := pairing{startsLine: true, partner: -1}
	si := splines[i]
	if si.Empty() {
		p.startsLine = false
		return p
	}
	n := len(splines)
	for k := 1; k < n; k++ {
		j := (i + k) % n
		sj := splines[j]
		if used[j] || sj.Empty() {
			continue
		}
		if dist(sj.End, si.Start) < cfg.Tolerance {
			p.startsLine = false
		}
		if p.partner < 0 {
			dStart := dist(si.Start, sj.Start)
			dEnd := dist(si.End, sj.End)
			// Coincident splines are duplicates, not rails.
			if dStart >= cfg.Tolerance && math.Abs(dStart-dEnd) < cfg.PairTolerance {
				p.partner = j
				p.diameter = dStart
			}
		}
	}
	return p
}
