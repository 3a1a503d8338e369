package main

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// A resolver collects the points reachable from an entity by following
// its #id references depth first. Resolution of an entity is a pure
// function of the store, so results are memoized by ID.
type resolver struct {
	store *EntityStore
	diags *diagSink

	memo   map[int][]r3.Vec
	onPath map[int]bool
	path   []int
}

func newResolver(store *EntityStore, diags *diagSink) *resolver {
	return &resolver{
		store:  store,
		diags:  diags,
		memo:   make(map[int][]r3.Vec),
		onPath: make(map[int]bool),
	}
}

// resolve returns the points reachable from entity id, in the order the
// references appear in the entity text. It returns a
// *CyclicReferenceError if id reaches itself.
func (r *resolver) resolve(id int) ([]r3.Vec, error) {
	if pts, ok := r.memo[id]; ok {
		return pts, nil
	}
	if r.onPath[id] {
		path := append(append([]int(nil), r.path...), id)
		return nil, &CyclicReferenceError{Path: path}
	}
	def, ok := r.store.Text(id)
	if !ok {
		return nil, nil
	}

	r.onPath[id] = true
	r.path = append(r.path, id)
	pts, err := r.resolveText(id, def)
	r.path = r.path[:len(r.path)-1]
	delete(r.onPath, id)
	if err != nil {
		return nil, err
	}
	r.memo[id] = pts
	return pts, nil
}

func (r *resolver) resolveText(id int, def string) ([]r3.Vec, error) {
	switch {
	case strings.HasPrefix(def, "CARTESIAN_POINT"), strings.HasPrefix(def, "DIRECTION"):
		p, ok := parsePoint(def)
		if !ok {
			r.diags.entity(DiagMalformedPoint, id, &MalformedPointError{ID: id})
			return nil, nil
		}
		return []r3.Vec{p}, nil

	case strings.Contains(def, "#"):
		var pts []r3.Vec
		for _, ref := range references(def) {
			if _, ok := r.store.Text(ref); !ok {
				r.diags.entity(DiagUnresolvedReference, id, &UnresolvedReferenceError{From: id, Ref: ref})
				continue
			}
			sub, err := r.resolve(ref)
			if err != nil {
				return nil, err
			}
			pts = append(pts, sub...)
		}
		return pts, nil
	}
	return nil, nil
}

// parsePoint extracts the first three numeric fields of a
// CARTESIAN_POINT or DIRECTION definition.
func parsePoint(def string) (r3.Vec, bool) {
	clean := strings.NewReplacer("(", "", ")", "", ";", "", "#", "").Replace(def)
	var xyz [3]float64
	n := 0
	for _, tok := range strings.Split(clean, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" || !(tok[0] == '-' || tok[0] == '+' || tok[0] == '.' || isDigit(tok[0])) {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		xyz[n] = v
		if n++; n == 3 {
			return r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}, true
		}
	}
	return r3.Vec{}, false
}

// references returns the entity IDs referenced by a definition, in
// textual order.
func references(def string) []int {
	segs := strings.Split(def, "#")
	var refs []int
	for _, seg := range segs[1:] {
		if id, err := strconv.Atoi(seg); err == nil {
			refs = append(refs, id)
			continue
		}
		// IDs are followed by punctuation such as ',' or ')'.
		n := 0
		for n < len(seg) && isDigit(seg[n]) {
			n++
		}
		if n == 0 {
			continue
		}
		id, err := strconv.Atoi(seg[:n])
		if err != nil {
			continue
		}
		refs = append(refs, id)
	}
	return refs
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
