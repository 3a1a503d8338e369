package main

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// stepBuilder writes synthetic STEP data sections.
type stepBuilder struct {
	lines []string
	next  int
}

func (b *stepBuilder) add(def string) int {
	b.next++
	b.lines = append(b.lines, fmt.Sprintf("#%d=%s;", b.next, def))
	return b.next
}

func (b *stepBuilder) point(p r3.Vec) int {
	return b.add(fmt.Sprintf("CARTESIAN_POINT('',(%g,%g,%g))", p.X, p.Y, p.Z))
}

func (b *stepBuilder) spline(pts []r3.Vec) int {
	refs := make([]string, len(pts))
	for i, p := range pts {
		refs[i] = fmt.Sprintf("#%d", b.point(p))
	}
	return b.add(fmt.Sprintf("B_SPLINE_CURVE_WITH_KNOTS('',3,(%s),.UNSPECIFIED.,.F.,.F.)", strings.Join(refs, ",")))
}

// railsFunc maps a parameter in [0, 1] to corresponding points on the
// two rails of a cable.
type railsFunc func(t float64) (r3.Vec, r3.Vec)

// cable writes a cable as segments pairs of splines with perSeg points
// each, rail 1 before rail 2 for every segment.
func (b *stepBuilder) cable(rails railsFunc, segments, perSeg int) {
	for s := 0; s < segments; s++ {
		var r1, r2 []r3.Vec
		for i := 0; i < perSeg; i++ {
			t := (float64(s) + float64(i)/float64(perSeg-1)) / float64(segments)
			p1, p2 := rails(t)
			r1 = append(r1, p1)
			r2 = append(r2, p2)
		}
		b.spline(r1)
		b.spline(r2)
	}
}

func (b *stepBuilder) String() string {
	var sb strings.Builder
	sb.WriteString("ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION(('synthetic'),'2;1');\nENDSEC;\nDATA;\n")
	for _, l := range b.lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	sb.WriteString("ENDSEC;\nEND-ISO-10303-21;\n")
	return sb.String()
}

func (b *stepBuilder) store() *EntityStore {
	s, err := ReadSTEP(strings.NewReader(b.String()))
	if err != nil {
		panic(err)
	}
	return s
}

// straightRails runs along +X from origin for length, with rail 2
// offset by diameter in +Y.
func straightRails(origin r3.Vec, length, diameter float64) railsFunc {
	return func(t float64) (r3.Vec, r3.Vec) {
		p := r3.Add(origin, r3.Vec{X: t * length})
		return p, r3.Add(p, r3.Vec{Y: diameter})
	}
}

// arcRails sweeps an arc of the given radius around the Z axis, with
// the rails on either side of it.
func arcRails(radius, diameter, sweep float64) railsFunc {
	return func(t float64) (r3.Vec, r3.Vec) {
		th := t * sweep
		u := r3.Vec{X: math.Cos(th), Y: math.Sin(th)}
		return r3.Scale(radius-diameter/2, u), r3.Scale(radius+diameter/2, u)
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MinPoints = 2
	cfg.MinSplines = 1
	return cfg
}

func newTestSink() *diagSink {
	return &diagSink{log: zap.NewNop()}
}
