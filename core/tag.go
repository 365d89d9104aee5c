package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zooyer/golib/xmath"
)

// Epsilon 判定两个坐标相同的浮点误差
const Epsilon = 1e-9

// Tag 代表 DXF 中的一组标签对
type Tag struct {
	Code  int
	Value string
}

// Name 去除空白并转为大写，用于比较记录名、段名
func (t Tag) Name() string {
	return strings.ToUpper(strings.TrimSpace(t.Value))
}

func (t Tag) String() string {
	return fmt.Sprintf("%d:%q", t.Code, t.Value)
}

func parseFloat(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not a float", ErrMalformed, raw)
	}
	return f, nil
}

func parseInt(raw string) (int, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformed, raw)
	}
	return int(i), nil
}

func parseShort(raw string) (int, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a 16-bit integer", ErrMalformed, raw)
	}
	return int(i), nil
}

func parseHex(raw string) (uint64, error) {
	h, err := strconv.ParseUint(strings.TrimSpace(raw), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a hex handle", ErrMalformed, raw)
	}
	return h, nil
}

func formatFloat(f float64) string {
	// 与 printf("%f") 保持一致：固定 6 位小数
	return strconv.FormatFloat(f, 'f', 6, 64)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}

func formatHex(h uint64) string {
	return strings.ToUpper(strconv.FormatUint(h, 16))
}

// Point 代表三维空间中的一个点
type Point struct {
	X, Y, Z float64
}

// ZAxis 默认拉伸方向 (0,0,1)
var ZAxis = Point{Z: 1}

// Equal 在 epsilon 误差内比较两点
func (p Point) Equal(q Point, epsilon float64) bool {
	return xmath.Equal(p.X, q.X, epsilon) &&
		xmath.Equal(p.Y, q.Y, epsilon) &&
		xmath.Equal(p.Z, q.Z, epsilon)
}

// IsZero 判断是否为零向量
func (p Point) IsZero() bool {
	return p.Equal(Point{}, Epsilon)
}

// Midpoint 两点中点
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2, Z: (p.Z + q.Z) / 2}
}

// Distance 两点距离
func (p Point) Distance(q Point) float64 {
	dx, dy, dz := q.X-p.X, q.Y-p.Y, q.Z-p.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// BBox 代表包围盒
type BBox struct {
	Min, Max Point
}

// Extend 扩展包围盒使其包含点 p
func (b BBox) Extend(p Point) BBox {
	b.Min.X, b.Min.Y, b.Min.Z = math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)
	b.Max.X, b.Max.Y, b.Max.Z = math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)
	return b
}

// BBoxOf 计算若干点的包围盒
func BBoxOf(points ...Point) BBox {
	if len(points) == 0 {
		return BBox{}
	}
	box := BBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.Extend(p)
	}
	return box
}
