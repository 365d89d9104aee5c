package tables

import "github.com/zooyer/dxfio/core"

// LTypeAlignment 线型对齐方式，只有 'A'
const LTypeAlignment = 'A'

// LType 线型定义
type LType struct {
	BaseEntry
	Description   string  // 3
	Alignment     int     // 72
	PatternLength float64 // 40
	Dashes        []Dash
}

// Dash 线型的一个元素，正数为实线段，负数为空白，0 为点
type Dash struct {
	Length      float64 // 49
	ElementType int     // 74，2 文字，4 形
	Shape       int     // 75
	Style       uint64  // 340
	Scale       float64 // 46
	Rotation    float64 // 50
	OffsetX     float64 // 44
	OffsetY     float64 // 45
	Text        string  // 9
}

func init() {
	Register("LTYPE", func() Entry { return &LType{BaseEntry: BaseEntry{TypeName: "LTYPE"}} })
}

// NewLType 由虚线长度创建简单线型
func NewLType(name, description string, dashes ...float64) *LType {
	l := &LType{BaseEntry: BaseEntry{TypeName: "LTYPE"}}
	core.Reset(l)
	l.EntryName, l.Description = name, description
	for _, d := range dashes {
		l.Dashes = append(l.Dashes, Dash{Length: d, Scale: 1})
		if d < 0 {
			l.PatternLength -= d
		} else {
			l.PatternLength += d
		}
	}
	return l
}

func (l *LType) Fields() []core.Field {
	return append(l.entryFields(5, "AcDbLinetypeTableRecord"),
		core.String(3, &l.Description, "").Required(),
		core.Short(72, &l.Alignment, LTypeAlignment).Required().Range(LTypeAlignment, LTypeAlignment),
		core.Count(73, func() int { return len(l.Dashes) }),
		core.Float(40, &l.PatternLength, 0).Required(),
		core.Group(49, &l.Dashes, dashFields),
	)
}

func dashFields(d *Dash) []core.Field {
	return []core.Field{
		core.Float(49, &d.Length, 0).Required(),
		core.Short(74, &d.ElementType, 0).Required().Range(0, 7).Since(core.R13),
		core.Short(75, &d.Shape, 0),
		core.Hex(340, &d.Style),
		core.Float(46, &d.Scale, 1),
		core.Angle(50, &d.Rotation, 0),
		core.Float(44, &d.OffsetX, 0),
		core.Float(45, &d.OffsetY, 0),
		core.String(9, &d.Text, ""),
	}
}

func (l *LType) Validate() error { return l.validateName() }

func (l *LType) Parse(s *core.Scanner) error { return core.Assemble(s, l) }

func (l *LType) Write(w *core.Writer) error { return core.Encode(w, l) }
