package entities

import (
	"fmt"

	"github.com/zooyer/dxfio/core"
)

// XLine 构造线 XLINE 与射线 RAY，两者组码相同，仅子类标记不同
type XLine struct {
	BaseEntity
	Base      core.Point // 10
	Direction core.Point // 11 单位方向向量
}

func init() {
	Register("XLINE", func() Entity { return &XLine{BaseEntity: BaseEntity{TypeName: "XLINE"}} })
	Register("RAY", func() Entity { return &XLine{BaseEntity: BaseEntity{TypeName: "RAY"}} })
}

// NewXLine 经过 base、方向为 direction 的构造线
func NewXLine(base, direction core.Point) *XLine {
	x := &XLine{BaseEntity: BaseEntity{TypeName: "XLINE"}}
	core.Reset(x)
	x.Base, x.Direction = base, direction
	return x
}

// NewRay 从 base 出发的射线
func NewRay(base, direction core.Point) *XLine {
	x := NewXLine(base, direction)
	x.TypeName = "RAY"
	return x
}

func (x *XLine) subclass() string {
	if x.TypeName == "RAY" {
		return "AcDbRay"
	}
	return "AcDbXline"
}

func (x *XLine) Fields() []core.Field {
	return append(x.entityFields(),
		core.SubclassMarker(x.subclass()),
		core.Point3(10, &x.Base, core.Point{}).Required(),
		core.Point3(11, &x.Direction, core.Point{}).Required(),
	)
}

func (x *XLine) Parse(s *core.Scanner) error { return core.Assemble(s, x) }

func (x *XLine) Write(w *core.Writer) error { return core.Encode(w, x) }

// Validate 方向向量为零时无效
func (x *XLine) Validate() error {
	if x.Direction.IsZero() {
		return fmt.Errorf("%w: %s direction vector is zero", core.ErrDegenerateGeometry, x.TypeName)
	}
	return nil
}

// BBox 无限长，只返回基点
func (x *XLine) BBox() core.BBox {
	return core.BBox{Min: x.Base, Max: x.Base}
}
