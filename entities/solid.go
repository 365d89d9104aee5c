package entities

import "github.com/zooyer/dxfio/core"

// ModelerGeometry BODY、REGION、3DSOLID 共用的 ACIS 数据。
// 组码 1 和 3 交错出现，各自独立计数。
type ModelerGeometry struct {
	BaseEntity
	ModelerVersion  int      // 70，固定为 1
	ProprietaryData []string // 1
	AdditionalData  []string // 3，超过 255 字符的续行
}

func (m *ModelerGeometry) modelerFields() []core.Field {
	return append(m.entityFields(),
		core.SubclassMarker("AcDbModelerGeometry"),
		core.Int(70, &m.ModelerVersion, 1).Required().Range(1, 1),
		core.Strings(1, &m.ProprietaryData),
		core.Strings(3, &m.AdditionalData),
	)
}

// BBox ACIS 数据不做几何解析
func (m *ModelerGeometry) BBox() core.BBox { return core.BBox{} }

type Body struct {
	ModelerGeometry
}

type Region struct {
	ModelerGeometry
}

type Solid3D struct {
	ModelerGeometry
	History uint64 // 350，R2007 起
}

func init() {
	Register("BODY", func() Entity { return newBody() })
	Register("REGION", func() Entity {
		return &Region{ModelerGeometry{BaseEntity: BaseEntity{TypeName: "REGION"}}}
	})
	Register("3DSOLID", func() Entity { return newSolid3D() })
}

func newBody() *Body {
	return &Body{ModelerGeometry{BaseEntity: BaseEntity{TypeName: "BODY"}}}
}

func newSolid3D() *Solid3D {
	return &Solid3D{ModelerGeometry: ModelerGeometry{BaseEntity: BaseEntity{TypeName: "3DSOLID"}}}
}

// NewBody 由 ACIS 数据行创建 BODY
func NewBody(data ...string) *Body {
	b := newBody()
	core.Reset(b)
	b.ProprietaryData = data
	return b
}

// NewSolid3D 由 ACIS 数据行创建 3DSOLID
func NewSolid3D(data ...string) *Solid3D {
	s := newSolid3D()
	core.Reset(s)
	s.ProprietaryData = data
	return s
}

func (b *Body) Fields() []core.Field { return b.modelerFields() }

func (b *Body) Parse(s *core.Scanner) error { return core.Assemble(s, b) }

func (b *Body) Write(w *core.Writer) error { return core.Encode(w, b) }

func (r *Region) Fields() []core.Field { return r.modelerFields() }

func (r *Region) Parse(s *core.Scanner) error { return core.Assemble(s, r) }

func (r *Region) Write(w *core.Writer) error { return core.Encode(w, r) }

func (s *Solid3D) Fields() []core.Field {
	return append(s.modelerFields(),
		core.SubclassMarker("AcDb3dSolid").Since(core.R2007),
		core.Hex(350, &s.History).Since(core.R2007),
	)
}

func (s *Solid3D) Parse(sc *core.Scanner) error { return core.Assemble(sc, s) }

func (s *Solid3D) Write(w *core.Writer) error { return core.Encode(w, s) }
