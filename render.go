package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// A RenderedCable is what a CableRenderer receives for each cable.
type RenderedCable struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"` // Always "Cable"
	Unit     string    `json:"unit"` // Always "mm"
	Diameter float64   `json:"diameter"`
	Points   []r3.Vec  `json:"points"`
}

type CableRenderer interface {
	RenderCable(c RenderedCable) error
}

// Deliver hands each cable's centerline to r, in order, under a freshly
// generated identifier.
func Deliver(cables []*Cable, r CableRenderer) error {
	for i, c := range cables {
		rc := RenderedCable{
			ID:       uuid.New(),
			Name:     fmt.Sprintf("Cable %d", i+1),
			Type:     "Cable",
			Unit:     "mm",
			Diameter: c.Diameter,
			Points:   c.Centerline,
		}
		if err := r.RenderCable(rc); err != nil {
			return fmt.Errorf("rendering %s: %w", rc.Name, err)
		}
	}
	return nil
}

// povRenderer writes a POV-Ray scene with one sphere_sweep per cable.
//
// POV-Ray is left-handed with Y up; CAD files are right-handed with Z
// up, so Y and Z are swapped on output.
type povRenderer struct {
	w       *bufio.Writer
	started bool

	// Bounding box of everything written so far, in POV coordinates.
	lo, hi r3.Vec
	empty  bool
}

func newPOVRenderer(w io.Writer) *povRenderer {
	return &povRenderer{w: bufio.NewWriter(w), empty: true}
}

func (p *povRenderer) RenderCable(c RenderedCable) error {
	if !p.started {
		if err := povSceneTemplate.Execute(p.w, nil); err != nil {
			return err
		}
		p.started = true
	}
	if len(c.Points) < 2 {
		// sphere_sweep needs at least two spheres.
		return nil
	}
	r := c.Diameter / 2
	fmt.Fprintf(p.w, "// %s %s (%s)\n", c.Name, c.ID, c.Unit)
	fmt.Fprintf(p.w, "sphere_sweep {\n")
	fmt.Fprintf(p.w, "  linear_spline\n")
	fmt.Fprintf(p.w, "  %d,\n", len(c.Points))
	for _, pt := range c.Points {
		pov := r3.Vec{X: pt.X, Y: pt.Z, Z: pt.Y}
		p.extend(pov)
		fmt.Fprintf(p.w, "  <%v, %v, %v>, %v\n", pov.X, pov.Y, pov.Z, r)
	}
	fmt.Fprintf(p.w, "  texture { CableTexture }\n")
	fmt.Fprintf(p.w, "}\n")
	return nil
}

func (p *povRenderer) extend(v r3.Vec) {
	if p.empty {
		p.lo, p.hi, p.empty = v, v, false
		return
	}
	p.lo = r3.Vec{X: min(p.lo.X, v.X), Y: min(p.lo.Y, v.Y), Z: min(p.lo.Z, v.Z)}
	p.hi = r3.Vec{X: max(p.hi.X, v.X), Y: max(p.hi.Y, v.Y), Z: max(p.hi.Z, v.Z)}
}

// Close places a camera looking at everything rendered and flushes the
// scene.
func (p *povRenderer) Close() error {
	if p.started && !p.empty {
		center := r3.Scale(0.5, r3.Add(p.lo, p.hi))
		size := r3.Norm(r3.Sub(p.hi, p.lo))
		args := struct{ LookAt, Location r3.Vec }{
			LookAt:   center,
			Location: r3.Add(center, r3.Scale(size, r3.Vec{X: 0.6, Y: 0.8, Z: -1})),
		}
		if err := povCameraTemplate.Execute(p.w, &args); err != nil {
			return err
		}
	}
	return p.w.Flush()
}

var povSceneTemplate = template.Must(template.New("").Parse(`#version 3.7;

#include "colors.inc"

global_settings {
	assumed_gamma 1.0
}

background { color White }

light_source {
	<1000, 2000, -1000>
	color White
}

#declare CableTexture = texture {
	pigment { color rgb <0.15, 0.15, 0.15> }
	finish { phong 0.4 }
}

`))

var povCameraTemplate = template.Must(template.New("").Parse(`
camera {
	location <{{.Location.X}}, {{.Location.Y}}, {{.Location.Z}}>
	look_at <{{.LookAt.X}}, {{.LookAt.Y}}, {{.LookAt.Z}}>
}
`))

// jsonlRenderer writes one JSON object per cable per line.
type jsonlRenderer struct {
	enc *json.Encoder
}

func newJSONLRenderer(w io.Writer) *jsonlRenderer {
	return &jsonlRenderer{json.NewEncoder(w)}
}

func (j *jsonlRenderer) RenderCable(c RenderedCable) error {
	return j.enc.Encode(c)
}
