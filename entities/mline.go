package entities

import "github.com/zooyer/dxfio/core"

// MLINE 对正方式（组码 70）
const (
	MLineTop    = 0
	MLineZero   = 1
	MLineBottom = 2
)

// MLINE 标志位（组码 71）
const (
	MLineHasVertices   = 1
	MLineClosed        = 2
	MLineSuppressStart = 4
	MLineSuppressEnd   = 8
)

// MLine 多线，R13 起
type MLine struct {
	BaseEntity
	StyleName     string     // 2，最长 32 字符
	Style         uint64     // 340 MLINESTYLE 句柄
	Scale         float64    // 40
	Justification int        // 70
	Flags         int        // 71
	StyleElements int        // 73 样式中的元素数
	Start         core.Point // 10
	Extrusion     core.Point // 210
	Vertices      []MLineVertex
}

// MLineVertex 每个顶点及其各元素的参数化数据
type MLineVertex struct {
	Position  core.Point // 11
	Direction core.Point // 12 线段方向
	Miter     core.Point // 13 斜接方向
	Elements  []MLineElement
}

// MLineElement 一个样式元素在某顶点处的参数
type MLineElement struct {
	Params   []float64 // 41
	AreaFill []float64 // 42
}

func init() {
	Register("MLINE", func() Entity { return &MLine{BaseEntity: BaseEntity{TypeName: "MLINE"}} })
}

// NewMLine 由顶点创建多线，方向和斜接向量由调用方填写
func NewMLine(points ...core.Point) *MLine {
	m := &MLine{BaseEntity: BaseEntity{TypeName: "MLINE"}}
	core.Reset(m)
	for _, p := range points {
		m.Vertices = append(m.Vertices, MLineVertex{Position: p})
	}
	if len(points) > 0 {
		m.Start = points[0]
		m.Flags |= MLineHasVertices
	}
	return m
}

func (m *MLine) Fields() []core.Field {
	return append(m.entityFields(),
		core.SubclassMarker("AcDbMline"),
		core.String(2, &m.StyleName, DefaultStyle).Required().FillEmpty(),
		core.Hex(340, &m.Style),
		core.Float(40, &m.Scale, 1).Required(),
		core.Short(70, &m.Justification, MLineTop).Required().Range(0, 2),
		core.Short(71, &m.Flags, 0).Required().Range(0, 15),
		core.Count(72, func() int { return len(m.Vertices) }),
		core.Short(73, &m.StyleElements, 0).Required(),
		core.Point3(10, &m.Start, core.Point{}).Required(),
		core.Point3(210, &m.Extrusion, core.ZAxis).Required(),
		core.Group(11, &m.Vertices, mlineVertexFields),
	)
}

func mlineVertexFields(v *MLineVertex) []core.Field {
	return []core.Field{
		core.Point3(11, &v.Position, core.Point{}).Required(),
		core.Point3(12, &v.Direction, core.Point{}).Required(),
		core.Point3(13, &v.Miter, core.Point{}).Required(),
		core.Group(74, &v.Elements, mlineElementFields),
	}
}

func mlineElementFields(e *MLineElement) []core.Field {
	return []core.Field{
		core.Count(74, func() int { return len(e.Params) }),
		core.Floats(41, &e.Params),
		core.Count(75, func() int { return len(e.AreaFill) }),
		core.Floats(42, &e.AreaFill),
	}
}

func (m *MLine) Parse(s *core.Scanner) error { return core.Assemble(s, m) }

func (m *MLine) Write(w *core.Writer) error { return core.Encode(w, m) }

func (m *MLine) BBox() core.BBox {
	points := []core.Point{m.Start}
	for _, v := range m.Vertices {
		points = append(points, v.Position)
	}
	return core.BBoxOf(points...)
}
