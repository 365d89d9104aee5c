package entities

import (
	"math"

	"github.com/zooyer/dxfio/core"
)

// LWPolylineClosed 组码 70 闭合标志
const LWPolylineClosed = 1

// LWPolyline 轻量多段线，R13 起
type LWPolyline struct {
	BaseEntity
	Flags         int     // 70
	ConstantWidth float64 // 43
	Elevation     float64 // 38
	Vertices      []LWVertex
	Extrusion     core.Point // 210
}

// LWVertex 顶点只有 X/Y，宽度和凸度可选
type LWVertex struct {
	core.Point         // 10, 20
	StartWidth float64 // 40
	EndWidth   float64 // 41
	Bulge      float64 // 42
}

func init() {
	Register("LWPOLYLINE", func() Entity { return &LWPolyline{BaseEntity: BaseEntity{TypeName: "LWPOLYLINE"}} })
}

// NewLWPolyline 由二维点创建
func NewLWPolyline(closed bool, points ...core.Point) *LWPolyline {
	l := &LWPolyline{BaseEntity: BaseEntity{TypeName: "LWPOLYLINE"}}
	core.Reset(l)
	for _, p := range points {
		l.Vertices = append(l.Vertices, LWVertex{Point: core.Point{X: p.X, Y: p.Y}})
	}
	if closed {
		l.Flags |= LWPolylineClosed
	}
	return l
}

func (l *LWPolyline) Fields() []core.Field {
	return append(l.entityFields(),
		core.SubclassMarker("AcDbPolyline"),
		core.Count(90, func() int { return len(l.Vertices) }),
		core.Flags(70, &l.Flags, 0).Required().Range(0, 129),
		core.Float(43, &l.ConstantWidth, 0),
		core.Float(38, &l.Elevation, 0).Since(core.R13),
		core.Group(10, &l.Vertices, func(v *LWVertex) []core.Field {
			return []core.Field{
				core.Point2(10, &v.Point, core.Point{}).Required(),
				core.Float(40, &v.StartWidth, 0),
				core.Float(41, &v.EndWidth, 0),
				core.Float(42, &v.Bulge, 0),
			}
		}),
		core.Point3(210, &l.Extrusion, core.ZAxis),
	)
}

func (l *LWPolyline) Parse(s *core.Scanner) error { return core.Assemble(s, l) }

func (l *LWPolyline) Write(w *core.Writer) error { return core.Encode(w, l) }

// Closed 是否闭合
func (l *LWPolyline) Closed() bool {
	return l.Flags&LWPolylineClosed != 0
}

func (l *LWPolyline) BBox() core.BBox {
	if len(l.Vertices) == 0 {
		return core.BBox{}
	}
	miX, miY, maX, maY := l.Vertices[0].X, l.Vertices[0].Y, l.Vertices[0].X, l.Vertices[0].Y
	for _, v := range l.Vertices {
		miX = math.Min(miX, v.X)
		miY = math.Min(miY, v.Y)
		maX = math.Max(maX, v.X)
		maY = math.Max(maY, v.Y)
	}
	return core.BBox{Min: core.Point{X: miX, Y: miY}, Max: core.Point{X: maX, Y: maY}}
}
