package main

import (
	"fmt"
	"image/color"
	"io"
	"math/rand"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A PointCloud is every centerline point of a set of cables, flattened
// for a point-cloud viewer. Positions holds x, y, z for each point and
// Colors holds the matching r, g, b in [0, 1]. All points of a cable
// share one color.
type PointCloud struct {
	Positions []float32
	Colors    []float32
	// Cable gives the cable index of each point.
	Cable []int32
}

func (pc *PointCloud) Len() int {
	return len(pc.Cable)
}

// NewPointCloud flattens cables into a point cloud, drawing one random
// color per cable from rng.
func NewPointCloud(cables []*Cable, rng *rand.Rand) *PointCloud {
	pc := new(PointCloud)
	for ci, c := range cables {
		r, g, b := rng.Float32(), rng.Float32(), rng.Float32()
		for _, p := range c.Centerline {
			pc.Positions = append(pc.Positions, float32(p.X), float32(p.Y), float32(p.Z))
			pc.Colors = append(pc.Colors, r, g, b)
			pc.Cable = append(pc.Cable, int32(ci))
		}
	}
	return pc
}

var cloudSchema = arrow.NewSchema([]arrow.Field{
	{Name: "cable", Type: arrow.PrimitiveTypes.Int32},
	{Name: "x", Type: arrow.PrimitiveTypes.Float32},
	{Name: "y", Type: arrow.PrimitiveTypes.Float32},
	{Name: "z", Type: arrow.PrimitiveTypes.Float32},
	{Name: "r", Type: arrow.PrimitiveTypes.Float32},
	{Name: "g", Type: arrow.PrimitiveTypes.Float32},
	{Name: "b", Type: arrow.PrimitiveTypes.Float32},
}, nil)

// WriteArrow writes the point cloud as a single-record Arrow IPC stream.
func (pc *PointCloud) WriteArrow(w io.Writer) error {
	b := array.NewRecordBuilder(memory.NewGoAllocator(), cloudSchema)
	defer b.Release()

	b.Field(0).(*array.Int32Builder).AppendValues(pc.Cable, nil)
	for c := 0; c < 3; c++ {
		pos := make([]float32, pc.Len())
		col := make([]float32, pc.Len())
		for i := range pos {
			pos[i] = pc.Positions[3*i+c]
			col[i] = pc.Colors[3*i+c]
		}
		b.Field(1+c).(*array.Float32Builder).AppendValues(pos, nil)
		b.Field(4+c).(*array.Float32Builder).AppendValues(col, nil)
	}
	rec := b.NewRecord()
	defer rec.Release()

	iw := ipc.NewWriter(w, ipc.WithSchema(cloudSchema))
	if err := iw.Write(rec); err != nil {
		iw.Close()
		return fmt.Errorf("writing arrow record: %w", err)
	}
	return iw.Close()
}

// A projection picks two coordinates of each point for a 2D plot.
type projection struct {
	name   string
	u, v   int // Indexes into x, y, z
	ux, vx string
}

var projections = map[string]projection{
	"xy": {"xy", 0, 1, "X (mm)", "Y (mm)"},
	"xz": {"xz", 0, 2, "X (mm)", "Z (mm)"},
	"yz": {"yz", 1, 2, "Y (mm)", "Z (mm)"},
}

// Plot draws the point cloud projected onto a coordinate plane, one
// scatter series per cable in that cable's color.
func (pc *PointCloud) Plot(plane string) (*plot.Plot, error) {
	proj, ok := projections[plane]
	if !ok {
		return nil, fmt.Errorf("unknown plane %q (want xy, xz, or yz)", plane)
	}

	plt := plot.New()
	plt.Title.Text = "Cable centerlines (" + proj.name + ")"
	plt.X.Label.Text = proj.ux
	plt.Y.Label.Text = proj.vx
	plt.X.Tick.Marker = lengthTicks{targetTicks: 8}
	plt.Y.Tick.Marker = lengthTicks{targetTicks: 8}
	plt.BackgroundColor = color.Black
	for _, elt := range []*color.Color{
		&plt.Title.TextStyle.Color,
		&plt.X.Color,
		&plt.X.Tick.Color,
		&plt.X.Tick.Label.Color,
		&plt.X.Label.TextStyle.Color,
		&plt.Y.Color,
		&plt.Y.Tick.Color,
		&plt.Y.Tick.Label.Color,
		&plt.Y.Label.TextStyle.Color,
	} {
		*elt = color.White
	}

	// Split into runs of the same cable.
	for i := 0; i < pc.Len(); {
		j := i
		for j < pc.Len() && pc.Cable[j] == pc.Cable[i] {
			j++
		}
		xys := make(plotter.XYs, j-i)
		for k := i; k < j; k++ {
			xys[k-i].X = float64(pc.Positions[3*k+proj.u])
			xys[k-i].Y = float64(pc.Positions[3*k+proj.v])
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(1)
		s.GlyphStyle.Color = color.RGBA{
			R: uint8(255 * pc.Colors[3*i]),
			G: uint8(255 * pc.Colors[3*i+1]),
			B: uint8(255 * pc.Colors[3*i+2]),
			A: 255,
		}
		plt.Add(s)
		i = j
	}
	return plt, nil
}
