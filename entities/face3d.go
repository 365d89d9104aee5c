package entities

import (
	"fmt"

	"github.com/zooyer/dxfio/core"
)

// 3DFACE 边不可见标志位（组码 70）
const (
	FirstEdgeInvisible  = 1
	SecondEdgeInvisible = 2
	ThirdEdgeInvisible  = 4
	FourthEdgeInvisible = 8
)

type Face3D struct {
	BaseEntity
	Corners   [4]core.Point // 10..13，三角面的第四点与第三点相同
	EdgeFlags int
}

func init() {
	Register("3DFACE", func() Entity { return &Face3D{BaseEntity: BaseEntity{TypeName: "3DFACE"}} })
}

// NewFace3D 由三或四个角点创建
func NewFace3D(corners ...core.Point) *Face3D {
	f := &Face3D{BaseEntity: BaseEntity{TypeName: "3DFACE"}}
	core.Reset(f)
	copy(f.Corners[:], corners)
	if len(corners) == 3 {
		f.Corners[3] = corners[2]
	}
	return f
}

func (f *Face3D) Fields() []core.Field {
	return append(f.entityFields(),
		core.SubclassMarker("AcDbFace"),
		core.Point3(10, &f.Corners[0], core.Point{}).Required(),
		core.Point3(11, &f.Corners[1], core.Point{}).Required(),
		core.Point3(12, &f.Corners[2], core.Point{}).Required(),
		core.Point3(13, &f.Corners[3], core.Point{}).Required(),
		core.Flags(70, &f.EdgeFlags, 0).Range(0, 15),
	)
}

func (f *Face3D) Parse(s *core.Scanner) error { return core.Assemble(s, f) }

func (f *Face3D) Write(w *core.Writer) error { return core.Encode(w, f) }

// Validate 四个角点全部重合时无效
func (f *Face3D) Validate() error {
	for _, c := range f.Corners[1:] {
		if !c.Equal(f.Corners[0], core.Epsilon) {
			return nil
		}
	}
	return fmt.Errorf("%w: 3DFACE corners all coincide", core.ErrDegenerateGeometry)
}

// EdgeVisible 第 i 条边（0..3）是否可见
func (f *Face3D) EdgeVisible(i int) bool {
	return f.EdgeFlags&(1<<i) == 0
}

func (f *Face3D) BBox() core.BBox {
	return core.BBoxOf(f.Corners[:]...)
}
