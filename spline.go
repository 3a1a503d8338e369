package main

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// A Spline is a B-spline curve reduced to the ordered points its
// definition references. Start and End are the first and last positions.
type Spline struct {
	ID        int // Entity ID
	Positions []r3.Vec
	Start     r3.Vec
	End       r3.Vec
}

// Empty reports whether no points could be resolved for s. Empty splines
// have meaningless Start and End and never match anything.
func (s *Spline) Empty() bool {
	return len(s.Positions) == 0
}

func newSpline(id int, pts []r3.Vec) *Spline {
	s := &Spline{ID: id, Positions: pts}
	if len(pts) > 0 {
		s.Start, s.End = pts[0], pts[len(pts)-1]
	}
	return s
}

// extractSplines returns every B_SPLINE_CURVE in the store, in
// declaration order. Splines whose references form a cycle are reported
// and skipped; splines that resolve to no points are kept.
func extractSplines(store *EntityStore, res *resolver) []*Spline {
	var splines []*Spline
	for _, id := range store.IDs {
		def, _ := store.Text(id)
		if !strings.HasPrefix(def, "B_SPLINE_CURVE") {
			continue
		}
		pts, err := res.resolve(id)
		if err != nil {
			res.diags.entity(DiagCyclicReference, id, err)
			continue
		}
		splines = append(splines, newSpline(id, pts))
	}
	return splines
}
