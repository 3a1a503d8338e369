package main

import "gonum.org/v1/gonum/spatial/r3"

// A Ray is the tangent ray leaving the end of a centerline.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec // Must be normalized
}

// tangentRay returns the ray leaving the end of a centerline in the
// direction of its last two points. It returns false if the centerline
// is too short to have a direction.
func tangentRay(pts []r3.Vec) (Ray, bool) {
	if len(pts) < 2 {
		return Ray{}, false
	}
	a, b := pts[len(pts)-2], pts[len(pts)-1]
	d := r3.Sub(b, a)
	if r3.Norm(d) == 0 {
		return Ray{}, false
	}
	return Ray{Origin: b, Dir: r3.Unit(d)}, true
}

// DistanceTo returns the perpendicular distance from p to the line
// through r.
func (r *Ray) DistanceTo(p r3.Vec) float64 {
	v := r3.Sub(p, r.Origin)
	return r3.Norm(r3.Cross(v, r.Dir))
}

// Ahead reports whether p lies on the forward side of r's origin.
func (r *Ray) Ahead(p r3.Vec) bool {
	return r3.Dot(r3.Sub(p, r.Origin), r.Dir) >= 0
}
