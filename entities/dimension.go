package entities

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/zooyer/dxfio/core"
)

type Dimension struct {
	BaseEntity
	BlockName         string     // 组码 2 (标注图形所在的匿名块)
	DefPoint          core.Point // 组码 10 (标注线起点)
	TextMidPoint      core.Point // 组码 11 (中间的点)
	DimType           int        // 组码 70 (关键：区分标注类型)
	Attachment        int        // 组码 71 (文字附着点 1..9)
	Text              string     // 组码 1
	TextRotation      float64    // 组码 53
	StyleName         string     // 组码 3 (标注样式名称，用于关联 TABLES)
	ActualMeasurement float64    // 组码 42
	MeasureStart      core.Point // 组码 13 (被测量的起点)
	MeasureEnd        core.Point // 组码 14 (被测量的终点)
	Angle             float64    // 组码 50
	Oblique           float64    // 组码 52
	Extrusion         core.Point // 组码 210
}

// 组码 70 低 3 位
const (
	DimRotated = 0
	DimAligned = 1
)

func init() {
	Register("DIMENSION", func() Entity {
		return &Dimension{BaseEntity: BaseEntity{TypeName: "DIMENSION"}}
	})
}

// NewDimension 创建线性（旋转）标注
func NewDimension(start, end, defPoint core.Point, angle float64) *Dimension {
	d := &Dimension{BaseEntity: BaseEntity{TypeName: "DIMENSION"}}
	core.Reset(d)
	d.MeasureStart, d.MeasureEnd, d.DefPoint, d.Angle = start, end, defPoint, angle
	d.TextMidPoint = start.Midpoint(end)
	return d
}

func (d *Dimension) Fields() []core.Field {
	return append(d.entityFields(),
		core.SubclassMarker("AcDbDimension"),
		core.String(2, &d.BlockName, ""),
		core.Point3(10, &d.DefPoint, core.Point{}).Required(),
		core.Point3(11, &d.TextMidPoint, core.Point{}).Required(),
		core.Short(70, &d.DimType, DimRotated).Required(),
		core.Short(71, &d.Attachment, 0).Range(0, 9).Since(core.R2000),
		core.String(1, &d.Text, ""),
		core.Angle(53, &d.TextRotation, 0),
		core.String(3, &d.StyleName, DefaultStyle).FillEmpty(),
		core.Float(42, &d.ActualMeasurement, 0).Since(core.R2000),
		core.Point3(210, &d.Extrusion, core.ZAxis),
		core.SubclassMarker("AcDbAlignedDimension"),
		core.Point3(13, &d.MeasureStart, core.Point{}).Required(),
		core.Point3(14, &d.MeasureEnd, core.Point{}).Required(),
		core.Angle(50, &d.Angle, 0),
		core.Angle(52, &d.Oblique, 0),
		core.SubclassMarker("AcDbRotatedDimension").When(func() bool { return d.DimType&0x07 == DimRotated }),
	)
}

func (d *Dimension) Parse(s *core.Scanner) error {
	if err := core.Assemble(s, d); err != nil {
		return err
	}
	// 样式名统一大写，便于和 DIMSTYLE 关联
	d.StyleName = strings.ToUpper(d.StyleName)
	return nil
}

func (d *Dimension) Write(w *core.Writer) error { return core.Encode(w, d) }

// Kind 标注类型，组码 70 的低 3 位
func (d *Dimension) Kind() int {
	return d.DimType & 0x07
}

// BBox 包含所有定义点，延伸线不超出标注线
func (d *Dimension) BBox() core.BBox {
	return d.BBox2(0)
}

// direction 标注线方向（单位向量）及其法向
func (d *Dimension) direction() (along, normal core.Point) {
	rad := d.Angle * math.Pi / 180.0
	return core.Point{X: math.Cos(rad), Y: math.Sin(rad)}, core.Point{X: -math.Sin(rad), Y: math.Cos(rad)}
}

// GetExtensionPoints 测量点 13、14 沿延伸线投影到标注线（过点 10）上的两个转角点
func (d *Dimension) GetExtensionPoints() (p13Corner, p14Corner core.Point) {
	v, _ := d.direction()
	project := func(p core.Point) core.Point {
		t := (p.X-d.DefPoint.X)*v.X + (p.Y-d.DefPoint.Y)*v.Y
		return core.Point{X: d.DefPoint.X + v.X*t, Y: d.DefPoint.Y + v.Y*t}
	}
	return project(d.MeasureStart), project(d.MeasureEnd)
}

// BBox2 标注的外接矩形，exe 为标注线超出延伸线的长度 (DIMEXE)
func (d *Dimension) BBox2(exe float64) core.BBox {
	c13, c14 := d.GetExtensionPoints()

	// 延伸线从测量点指向标注线，超出部分继续沿同一方向
	_, u := d.direction()
	if (c13.X-d.MeasureStart.X)*u.X+(c13.Y-d.MeasureStart.Y)*u.Y < 0 {
		u = core.Point{X: -u.X, Y: -u.Y}
	}
	extend := func(p core.Point) core.Point {
		return core.Point{X: p.X + u.X*exe, Y: p.Y + u.Y*exe}
	}

	box := core.BBoxOf(d.MeasureStart, d.MeasureEnd, extend(c13), extend(c14), d.TextMidPoint)
	box.Min.Z, box.Max.Z = 0, 0
	return box
}

var (
	mtextFormat = regexp.MustCompile(`\\[A-Za-z][^;]*;`) // MTEXT 格式码，如 \A1;
	numberText  = regexp.MustCompile(`-?[0-9]+(\.[0-9]+)?`)
)

// GetCleanVal 测量值；没有 42 组码时从覆盖文字中提取数字
func (d *Dimension) GetCleanVal() float64 {
	if d.ActualMeasurement > 0 || d.Text == "" {
		return d.ActualMeasurement
	}
	text := mtextFormat.ReplaceAllString(d.Text, "")
	if val, err := strconv.ParseFloat(numberText.FindString(text), 64); err == nil {
		return val
	}
	return d.ActualMeasurement
}
