package tables

import "github.com/zooyer/dxfio/core"

// View 命名视图
type View struct {
	BaseEntry
	Height       float64    // 40
	Center       core.Point // 10, 20
	Width        float64    // 41
	Direction    core.Point // 11
	Target       core.Point // 12
	LensLength   float64    // 42
	FrontClip    float64    // 43
	BackClip     float64    // 44
	Twist        float64    // 50
	Mode         int        // 71
	RenderMode   int        // 281
	HasUCS       int        // 72，1 时输出 UCS 相关字段
	UCSOrigin    core.Point // 110
	UCSXAxis     core.Point // 111
	UCSYAxis     core.Point // 112
	OrthoType    int        // 79
	UCSElevation float64    // 146
	NamedUCS     uint64     // 345
	BaseUCS      uint64     // 346
}

func init() {
	Register("VIEW", func() Entry { return &View{BaseEntry: BaseEntry{TypeName: "VIEW"}} })
}

// NewView 以 center 为中心、宽高为 width/height 的平面视图
func NewView(name string, center core.Point, width, height float64) *View {
	v := &View{BaseEntry: BaseEntry{TypeName: "VIEW"}}
	core.Reset(v)
	v.EntryName, v.Center, v.Width, v.Height = name, center, width, height
	return v
}

func (v *View) Fields() []core.Field {
	ucs := func() bool { return v.HasUCS == 1 }
	return append(v.entryFields(5, "AcDbViewTableRecord"),
		core.Float(40, &v.Height, 0).Required(),
		core.Point2(10, &v.Center, core.Point{}).Required(),
		core.Float(41, &v.Width, 0).Required(),
		core.Point3(11, &v.Direction, core.ZAxis).Required(),
		core.Point3(12, &v.Target, core.Point{}).Required(),
		core.Float(42, &v.LensLength, 50).Required(),
		core.Float(43, &v.FrontClip, 0).Required(),
		core.Float(44, &v.BackClip, 0).Required(),
		core.Angle(50, &v.Twist, 0).Required(),
		core.Short(71, &v.Mode, 0).Required(),
		core.Short(281, &v.RenderMode, 0).Range(0, 6).Since(core.R2000),
		core.Short(72, &v.HasUCS, 0).Required().Range(0, 1).Since(core.R2000),
		core.Point3(110, &v.UCSOrigin, core.Point{}).Required().Since(core.R2000).When(ucs),
		core.Point3(111, &v.UCSXAxis, core.Point{X: 1}).Required().Since(core.R2000).When(ucs),
		core.Point3(112, &v.UCSYAxis, core.Point{Y: 1}).Required().Since(core.R2000).When(ucs),
		core.Short(79, &v.OrthoType, 0).Range(0, 6).Since(core.R2000).When(ucs),
		core.Float(146, &v.UCSElevation, 0).Since(core.R2000).When(ucs),
		core.Hex(345, &v.NamedUCS).Since(core.R2000).When(ucs),
		core.Hex(346, &v.BaseUCS).Since(core.R2000).When(ucs),
	)
}

func (v *View) Validate() error { return v.validateName() }

func (v *View) Parse(s *core.Scanner) error { return core.Assemble(s, v) }

func (v *View) Write(w *core.Writer) error { return core.Encode(w, v) }
