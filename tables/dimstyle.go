package tables

import (
	"strings"

	"github.com/zooyer/dxfio/core"
)

// DefaultPrecision DIMDEC 默认小数位数
const DefaultPrecision = 4

// DimStyle 标注样式，只保留影响标注文字和几何的常用变量
type DimStyle struct {
	BaseEntry
	Suffix     string  // 3 DIMPOST，标注文字后缀
	Scale      float64 // 40 DIMSCALE，全局比例，影响所有标注特征
	ArrowSize  float64 // 41 DIMASZ
	ExOffset   float64 // 42 DIMEXO，延伸线起点偏移
	LineInc    float64 // 43 DIMDLI，基线标注间距
	ExLimit    float64 // 44 DIMEXE，标注线超出延伸线的长度
	TextHeight float64 // 140 DIMTXT
	TextAbove  int     // 77 DIMTAD
	Precision  int     // 271 DIMDEC，显示的小数位数
	TextStyle  uint64  // 340 DIMTXSTY
}

func init() {
	Register("DIMSTYLE", func() Entry { return &DimStyle{BaseEntry: BaseEntry{TypeName: "DIMSTYLE"}} })
}

// NewDimStyle 使用 AutoCAD 英制默认值
func NewDimStyle(name string) *DimStyle {
	d := &DimStyle{BaseEntry: BaseEntry{TypeName: "DIMSTYLE"}}
	core.Reset(d)
	d.EntryName = name
	return d
}

func (d *DimStyle) Fields() []core.Field {
	// DIMSTYLE 的句柄是 105 而不是 5
	return append(d.entryFields(105, "AcDbDimStyleTableRecord"),
		core.String(3, &d.Suffix, ""),
		core.Float(40, &d.Scale, 1).Required(), // 默认为 1.0，防止乘法归零
		core.Float(41, &d.ArrowSize, 0.18).Required(),
		core.Float(42, &d.ExOffset, 0.0625).Required(),
		core.Float(43, &d.LineInc, 0.38).Required(),
		core.Float(44, &d.ExLimit, 0.18).Required(),
		core.Float(140, &d.TextHeight, 0.18).Required(),
		core.Short(77, &d.TextAbove, 0).Range(0, 4),
		core.Short(271, &d.Precision, DefaultPrecision).Required().Range(0, 8).Since(core.R13),
		core.Hex(340, &d.TextStyle).Since(core.R13),
	)
}

// Parse 样式名统一大写，DIMENSION 通过大写名称引用
func (d *DimStyle) Parse(s *core.Scanner) error {
	if err := core.Assemble(s, d); err != nil {
		return err
	}
	d.EntryName = strings.ToUpper(d.EntryName)
	return nil
}

func (d *DimStyle) Validate() error { return d.validateName() }

func (d *DimStyle) Write(w *core.Writer) error { return core.Encode(w, d) }
