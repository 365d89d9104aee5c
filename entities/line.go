package entities

import (
	"fmt"
	"math"

	"github.com/zooyer/dxfio/core"
)

// Line LINE，以及 R10/R11 时代的 3DLINE
type Line struct {
	BaseEntity
	Start, End core.Point
	Extrusion  core.Point
}

func init() {
	Register("LINE", func() Entity { return &Line{BaseEntity: BaseEntity{TypeName: "LINE"}} })
	Register("3DLINE", func() Entity { return &Line{BaseEntity: BaseEntity{TypeName: "3DLINE"}} })
}

// NewLine 由两点创建直线
func NewLine(start, end core.Point) *Line {
	l := &Line{BaseEntity: BaseEntity{TypeName: "LINE"}}
	core.Reset(l)
	l.Start, l.End = start, end
	return l
}

// NewLine3D 由两点创建 3DLINE
func NewLine3D(start, end core.Point) *Line {
	l := NewLine(start, end)
	l.TypeName = "3DLINE"
	return l
}

func (l *Line) Fields() []core.Field {
	return append(l.entityFields(),
		core.SubclassMarker("AcDbLine"),
		core.Point3(10, &l.Start, core.Point{}).Required(),
		core.Point3(11, &l.End, core.Point{}).Required(),
		core.Point3(210, &l.Extrusion, core.ZAxis),
	)
}

func (l *Line) Parse(s *core.Scanner) error { return core.Assemble(s, l) }

func (l *Line) Write(w *core.Writer) error { return core.Encode(w, l) }

// Validate 起点终点重合的直线无效
func (l *Line) Validate() error {
	if l.Start.Equal(l.End, core.Epsilon) {
		return fmt.Errorf("%w: %s start and end points coincide at (%g, %g, %g)",
			core.ErrDegenerateGeometry, l.TypeName, l.Start.X, l.Start.Y, l.Start.Z)
	}
	return nil
}

func (l *Line) Midpoint() core.Point { return l.Start.Midpoint(l.End) }

func (l *Line) Length() float64 { return l.Start.Distance(l.End) }

func (l *Line) BBox() core.BBox {
	return core.BBox{
		Min: core.Point{X: math.Min(l.Start.X, l.End.X), Y: math.Min(l.Start.Y, l.End.Y), Z: math.Min(l.Start.Z, l.End.Z)},
		Max: core.Point{X: math.Max(l.Start.X, l.End.X), Y: math.Max(l.Start.Y, l.End.Y), Z: math.Max(l.Start.Z, l.End.Z)},
	}
}
