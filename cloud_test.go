package main

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/vg"
)

func cloudCables() []*Cable {
	return []*Cable{
		{Centerline: []r3.Vec{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}},
		{Centerline: nil},
		{Centerline: []r3.Vec{{X: -1}, {X: -2}, {X: -3}}},
	}
}

func TestNewPointCloud(t *testing.T) {
	pc := NewPointCloud(cloudCables(), rand.New(rand.NewSource(1)))
	require.Equal(t, 5, pc.Len())
	assert.Len(t, pc.Positions, 15)
	assert.Len(t, pc.Colors, 15)
	assert.Equal(t, []int32{0, 0, 2, 2, 2}, pc.Cable)
	assert.Equal(t, []float32{4, 5, 6}, pc.Positions[3:6])

	// Every point of a cable shares its color.
	assert.Equal(t, pc.Colors[0:3], pc.Colors[3:6])
	assert.Equal(t, pc.Colors[6:9], pc.Colors[12:15])
	for _, c := range pc.Colors {
		assert.True(t, c >= 0 && c < 1)
	}

	// The same seed gives the same colors.
	again := NewPointCloud(cloudCables(), rand.New(rand.NewSource(1)))
	assert.Equal(t, pc.Colors, again.Colors)
}

func TestPointCloudArrow(t *testing.T) {
	pc := NewPointCloud(cloudCables(), rand.New(rand.NewSource(1)))
	var buf bytes.Buffer
	require.NoError(t, pc.WriteArrow(&buf))

	rdr, err := ipc.NewReader(&buf, ipc.WithAllocator(memory.NewGoAllocator()))
	require.NoError(t, err)
	defer rdr.Release()
	assert.True(t, rdr.Schema().Equal(cloudSchema))

	require.True(t, rdr.Next())
	rec := rdr.Record()
	require.EqualValues(t, 5, rec.NumRows())
	assert.Equal(t, pc.Cable, rec.Column(0).(*array.Int32).Int32Values())
	assert.Equal(t, []float32{1, 4, -1, -2, -3}, rec.Column(1).(*array.Float32).Float32Values())
	assert.Equal(t, []float32{3, 6, 0, 0, 0}, rec.Column(3).(*array.Float32).Float32Values())
	green := rec.Column(5).(*array.Float32).Float32Values()
	assert.Equal(t, pc.Colors[1], green[0])
	assert.Equal(t, pc.Colors[13], green[4])
	assert.False(t, rdr.Next())
	assert.NoError(t, rdr.Err())
}

func TestPointCloudPlot(t *testing.T) {
	pc := NewPointCloud(cloudCables(), rand.New(rand.NewSource(1)))

	_, err := pc.Plot("xw")
	assert.ErrorContains(t, err, `unknown plane "xw"`)

	for plane := range projections {
		plt, err := pc.Plot(plane)
		require.NoError(t, err, plane)
		assert.Equal(t, projections[plane].ux, plt.X.Label.Text)

		w, err := plt.WriterTo(4*vg.Inch, 3*vg.Inch, "png")
		require.NoError(t, err, plane)
		var buf bytes.Buffer
		_, err = w.WriteTo(&buf)
		require.NoError(t, err, plane)
		assert.NotZero(t, buf.Len())
	}
}
