package entities

import "github.com/zooyer/dxfio/core"

// ATTRIB 标志位（组码 70）
const (
	AttribInvisible = 1
	AttribConstant  = 2
	AttribVerify    = 4
	AttribPreset    = 8
)

type Attrib struct {
	BaseEntity
	Location        core.Point // 10
	Height          float64    // 40
	Text            string     // 1 属性值
	Rotation        float64    // 50
	WidthFactor     float64    // 41
	Oblique         float64    // 51
	Style           string     // 7
	GenerationFlags int        // 71，2 反向，4 倒置
	HAlign          int        // 72，0..5
	AlignPoint      core.Point // 11
	Extrusion       core.Point // 210
	Tag             string     // 2 属性标签，如 "序号"
	Flags           int        // 70
	FieldLength     int        // 73
	VAlign          int        // 74，0..3
}

func init() {
	Register("ATTRIB", func() Entity {
		return &Attrib{BaseEntity: BaseEntity{TypeName: "ATTRIB"}}
	})
}

// NewAttrib 创建属性
func NewAttrib(tag, text string, location core.Point, height float64) *Attrib {
	a := &Attrib{BaseEntity: BaseEntity{TypeName: "ATTRIB"}}
	core.Reset(a)
	a.Tag, a.Text, a.Location, a.Height = tag, text, location, height
	return a
}

func (a *Attrib) Fields() []core.Field {
	return append(a.entityFields(),
		core.SubclassMarker("AcDbText"),
		core.Point3(10, &a.Location, core.Point{}).Required(),
		core.Float(40, &a.Height, 0).Required(),
		core.String(1, &a.Text, "").Required(),
		core.Angle(50, &a.Rotation, 0),
		core.Float(41, &a.WidthFactor, 1),
		core.Angle(51, &a.Oblique, 0),
		core.String(7, &a.Style, DefaultStyle).FillEmpty(),
		core.Flags(71, &a.GenerationFlags, 0).Range(0, 6),
		core.Short(72, &a.HAlign, 0).Range(0, 5),
		core.Point3(11, &a.AlignPoint, core.Point{}),
		core.Point3(210, &a.Extrusion, core.ZAxis),
		core.SubclassMarker("AcDbAttribute"),
		core.String(2, &a.Tag, "").Required(),
		core.Flags(70, &a.Flags, 0).Required().Range(0, 15),
		core.Short(73, &a.FieldLength, 0),
		core.Short(74, &a.VAlign, 0).Range(0, 3).Since(core.R12),
	)
}

func (a *Attrib) Parse(s *core.Scanner) error { return core.Assemble(s, a) }

func (a *Attrib) Write(w *core.Writer) error { return core.Encode(w, a) }

func (a *Attrib) BBox() core.BBox {
	// 简化处理：属性文字暂时以位置点作为包围盒
	return core.BBox{Min: a.Location, Max: a.Location}
}
