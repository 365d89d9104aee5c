package utils

import (
	"strings"

	"github.com/zooyer/dxfio"
	"github.com/zooyer/dxfio/core"
	"github.com/zooyer/dxfio/entities"
)

// TransformBBox 把块内包围盒的 8 个角点变换到世界坐标后重新求包围盒
func TransformBBox(local core.BBox, ins *entities.Insert) core.BBox {
	lo, hi := local.Min, local.Max
	corners := make([]core.Point, 0, 8)
	for _, x := range []float64{lo.X, hi.X} {
		for _, y := range []float64{lo.Y, hi.Y} {
			for _, z := range []float64{lo.Z, hi.Z} {
				corners = append(corners, TransformPoint(core.Point{X: x, Y: y, Z: z}, ins))
			}
		}
	}
	return core.BBoxOf(corners...)
}

// WorldBBox 实体在世界坐标中的包围盒，INSERT 展开引用的块（包括嵌套块）
func WorldBBox(doc *dxfio.Document, entity entities.Entity) core.BBox {
	return worldBBox(doc, entity, map[string]bool{})
}

func worldBBox(doc *dxfio.Document, entity entities.Entity, visiting map[string]bool) core.BBox {
	ins, ok := entity.(*entities.Insert)
	if !ok {
		return entity.BBox()
	}

	name := strings.ToUpper(ins.BlockName)
	block, ok := doc.Blocks[name]
	if !ok || len(block.Entities) == 0 || visiting[name] {
		return ins.BBox()
	}
	visiting[name] = true
	defer delete(visiting, name)

	var points []core.Point
	for _, sub := range block.Entities {
		box := worldBBox(doc, sub, visiting)
		points = append(points, box.Min, box.Max)
	}
	local := core.BBoxOf(points...)
	// 块内坐标相对于块基点
	local.Min = core.Point{X: local.Min.X - block.BasePoint.X, Y: local.Min.Y - block.BasePoint.Y, Z: local.Min.Z - block.BasePoint.Z}
	local.Max = core.Point{X: local.Max.X - block.BasePoint.X, Y: local.Max.Y - block.BasePoint.Y, Z: local.Max.Z - block.BasePoint.Z}
	return TransformBBox(local, ins)
}
