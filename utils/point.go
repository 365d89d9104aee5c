package utils

import (
	"math"

	"github.com/zooyer/dxfio/core"
	"github.com/zooyer/dxfio/entities"
)

// TransformPoint 将块内坐标经过 INSERT 的 缩放 -> 旋转 -> 平移 转换到世界坐标
func TransformPoint(p core.Point, ins *entities.Insert) core.Point {
	rad := ins.Rotation * math.Pi / 180.0
	cos, sin := math.Cos(rad), math.Sin(rad)

	tx, ty, tz := p.X*ins.Scale.X, p.Y*ins.Scale.Y, p.Z*ins.Scale.Z
	return core.Point{
		X: tx*cos - ty*sin + ins.InsertionPoint.X,
		Y: tx*sin + ty*cos + ins.InsertionPoint.Y,
		Z: tz + ins.InsertionPoint.Z,
	}
}
