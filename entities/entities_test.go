package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zooyer/dxfio/core"
)

func TestProxy_GraphicsAndEntityData(t *testing.T) {
	text := stream(
		0, "ACAD_PROXY_ENTITY", 5, "3C", 100, "AcDbEntity", 8, "0",
		92, 16, 310, "0A0B", 310, "0C0D",
		100, "AcDbProxyEntity", 90, 498, 91, 500, 93, 32,
		310, "FFEE", 340, "1A", 340, "1B", 94, 0, 95, 0, 70, 1,
		0, "EOF")
	e, _, sink, err := parse(t, core.R2000, text)
	require.NoError(t, err)
	assert.Zero(t, sink.Count(core.BadSubclassMarker))

	proxy := e.(*ProxyEntity)
	assert.Equal(t, []string{"0A0B", "0C0D"}, proxy.Graphics)
	assert.Equal(t, []string{"FFEE"}, proxy.EntityData)
	assert.Equal(t, []uint64{0x1A, 0x1B}, proxy.ObjectIDs)
	assert.Equal(t, 16, proxy.GraphicsSize)
	assert.Equal(t, 32, proxy.EntityDataSize)
	assert.Equal(t, 1, proxy.OriginalFormat)

	got := roundTrip(t, core.R2000, proxy)
	assert.Equal(t, proxy, got)
}

func TestSolid_InterleavedData(t *testing.T) {
	text := stream(0, "3DSOLID", 8, "0", 70, 1, 1, "a", 3, "b", 1, "c", 3, "d", 1, "e", 0, "EOF")
	e, _, _, err := parse(t, core.R2000, text)
	require.NoError(t, err)

	solid := e.(*Solid3D)
	assert.Equal(t, []string{"a", "c", "e"}, solid.ProprietaryData)
	assert.Equal(t, []string{"b", "d"}, solid.AdditionalData)
	assert.Empty(t, solid.BBox())

	solid.History = 0x99
	out := write(t, core.R2010, solid)
	assert.Contains(t, out, "100\nAcDb3dSolid\n")
	assert.Contains(t, out, "350\n99\n")
	assert.NotContains(t, write(t, core.R2000, solid), "350\n")
}

func TestSolid_ModelerVersion(t *testing.T) {
	_, _, _, err := parse(t, core.R2000, stream(0, "BODY", 8, "0", 70, 2, 1, "x", 0, "EOF"))
	assert.ErrorIs(t, err, core.ErrMalformed)
}

func TestMLine_Groups(t *testing.T) {
	text := stream(
		0, "MLINE", 8, "0", 100, "AcDbMline", 2, "standard", 40, 1, 70, 0, 71, 1, 72, 2, 73, 2,
		10, 0, 20, 0, 30, 0, 210, 0, 220, 0, 230, 1,
		11, 0, 21, 0, 31, 0, 12, 1, 22, 0, 32, 0, 13, 0, 23, 1, 33, 0,
		74, 2, 41, 0, 41, 0.5, 75, 0,
		74, 1, 41, -0.5, 75, 1, 42, 0.25,
		11, 10, 21, 0, 31, 0, 12, 1, 22, 0, 32, 0, 13, 0, 23, 1, 33, 0,
		74, 1, 41, 0, 75, 0,
		74, 1, 41, -0.5, 75, 0,
		0, "EOF")
	e, _, _, err := parse(t, core.R2000, text)
	require.NoError(t, err)

	mline := e.(*MLine)
	assert.Equal(t, "standard", mline.StyleName)
	require.Len(t, mline.Vertices, 2)
	assert.Equal(t, core.Point{X: 10}, mline.Vertices[1].Position)

	first := mline.Vertices[0].Elements
	require.Len(t, first, 2)
	assert.Equal(t, []float64{0, 0.5}, first[0].Params)
	assert.Empty(t, first[0].AreaFill)
	assert.Equal(t, []float64{-0.5}, first[1].Params)
	assert.Equal(t, []float64{0.25}, first[1].AreaFill)
	assert.Len(t, mline.Vertices[1].Elements, 2)

	assert.Equal(t, core.BBox{Max: core.Point{X: 10}}, mline.BBox())
	assert.Equal(t, mline, roundTrip(t, core.R2000, mline))
}

func TestXLine_Degenerate(t *testing.T) {
	_, _, _, err := parse(t, core.R2000, stream(0, "XLINE", 8, "0", 10, 1, 20, 1, 30, 0, 11, 0, 21, 0, 31, 0, 0, "EOF"))
	assert.ErrorIs(t, err, core.ErrDegenerateGeometry)

	ray := NewRay(core.Point{}, core.Point{X: 1})
	out := write(t, core.R2000, ray)
	assert.Contains(t, out, "100\nAcDbRay\n")
	assert.NotContains(t, out, "AcDbXline")
}

func TestLWPolyline_Vertices(t *testing.T) {
	text := stream(
		0, "LWPOLYLINE", 8, "0", 90, 3, 70, 1, 43, 0.5,
		10, 0, 20, 0, 10, 4, 20, 0, 42, 1, 10, 4, 20, 3, 40, 0.1, 41, 0.2,
		0, "EOF")
	e, _, _, err := parse(t, core.R2000, text)
	require.NoError(t, err)

	pl := e.(*LWPolyline)
	require.Len(t, pl.Vertices, 3)
	assert.True(t, pl.Closed())
	assert.Equal(t, 1.0, pl.Vertices[1].Bulge)
	assert.Equal(t, 0.2, pl.Vertices[2].EndWidth)
	assert.Equal(t, core.BBox{Max: core.Point{X: 4, Y: 3}}, pl.BBox())

	_, _, _, err = parse(t, core.R2000, stream(0, "LWPOLYLINE", 8, "0", 70, 2, 10, 0, 20, 0, 0, "EOF"))
	assert.NoError(t, err, "2 在 [0, 129] 内")
	_, _, _, err = parse(t, core.R2000, stream(0, "LWPOLYLINE", 8, "0", 70, 200, 10, 0, 20, 0, 0, "EOF"))
	assert.ErrorIs(t, err, core.ErrMalformed)
}

func TestFace3D(t *testing.T) {
	face := NewFace3D(core.Point{}, core.Point{X: 1}, core.Point{X: 1, Y: 1})
	assert.Equal(t, face.Corners[2], face.Corners[3])

	face.EdgeFlags = SecondEdgeInvisible
	assert.True(t, face.EdgeVisible(0))
	assert.False(t, face.EdgeVisible(1))

	_, _, _, err := parse(t, core.R12, stream(0, "3DFACE", 8, "0",
		10, 1, 20, 1, 30, 1, 11, 1, 21, 1, 31, 1, 12, 1, 22, 1, 32, 1, 13, 1, 23, 1, 33, 1, 0, "EOF"))
	assert.ErrorIs(t, err, core.ErrDegenerateGeometry)
}

func TestAttrib_Ranges(t *testing.T) {
	base := []any{0, "ATTRIB", 8, "0", 10, 0, 20, 0, 30, 0, 40, 1, 1, "v", 2, "T"}
	_, _, _, err := parse(t, core.R12, stream(append(base, 70, 16, 0, "EOF")...))
	assert.ErrorIs(t, err, core.ErrMalformed)

	e, _, _, err := parse(t, core.R12, stream(append(base, 70, 9, 74, 3, 0, "EOF")...))
	require.NoError(t, err)
	attr := e.(*Attrib)
	assert.Equal(t, AttribInvisible|AttribPreset, attr.Flags)
	assert.Equal(t, 3, attr.VAlign)
	assert.Equal(t, DefaultStyle, attr.Style)
}

func TestDimension(t *testing.T) {
	text := stream(
		0, "DIMENSION", 8, "DIM", 100, "AcDbEntity", 100, "AcDbDimension", 2, "*D1",
		10, 10, 20, 5, 30, 0, 11, 5, 21, 5, 31, 0, 70, 32, 1, "%%c<>", 3, "iso-25", 42, 10,
		100, "AcDbAlignedDimension", 13, 0, 23, 0, 33, 0, 14, 10, 24, 0, 34, 0,
		100, "AcDbRotatedDimension",
		0, "EOF")
	e, _, sink, err := parse(t, core.R2000, text)
	require.NoError(t, err)
	assert.Zero(t, sink.Count(core.BadSubclassMarker))

	dim := e.(*Dimension)
	assert.Equal(t, "ISO-25", dim.StyleName)
	assert.Equal(t, DimRotated, dim.Kind())
	assert.Equal(t, 10.0, dim.GetCleanVal())

	c13, c14 := dim.GetExtensionPoints()
	assert.Equal(t, core.Point{X: 0, Y: 5}, c13)
	assert.Equal(t, core.Point{X: 10, Y: 5}, c14)

	box := dim.BBox2(1)
	assert.InDelta(t, 6, box.Max.Y, 1e-9)

	dim.DimType = DimAligned
	assert.NotContains(t, write(t, core.R2000, dim), "AcDbRotatedDimension")
}
