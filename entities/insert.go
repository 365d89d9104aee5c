package entities

import (
	"fmt"

	"github.com/zooyer/dxfio/core"
)

type Insert struct {
	BaseEntity
	AttribsFollow  int // 66，1 表示后面跟随 ATTRIB 直到 SEQEND
	BlockName      string
	InsertionPoint core.Point
	Scale          core.Point
	Rotation       float64
	Columns, Rows  int     // 70, 71
	ColumnSpacing  float64 // 44
	RowSpacing     float64 // 45
	Extrusion      core.Point
	Attributes     []*Attrib
	SeqEnd         *SeqEnd
}

// SeqEnd 结束 ATTRIB 序列的 SEQEND 记录，只有通用字段
type SeqEnd struct {
	BaseEntity
}

func (s *SeqEnd) Fields() []core.Field { return s.entityFields() }

func init() {
	Register("INSERT", func() Entity { return &Insert{BaseEntity: BaseEntity{TypeName: "INSERT"}} })
}

// NewInsert 在 point 处插入块
func NewInsert(blockName string, point core.Point) *Insert {
	i := &Insert{BaseEntity: BaseEntity{TypeName: "INSERT"}}
	core.Reset(i)
	i.BlockName, i.InsertionPoint = blockName, point
	return i
}

func (i *Insert) Fields() []core.Field {
	return append(i.entityFields(),
		core.SubclassMarker("AcDbBlockReference"),
		core.Short(66, &i.AttribsFollow, 0).Range(0, 1),
		core.String(2, &i.BlockName, "").Required(),
		core.Point3(10, &i.InsertionPoint, core.Point{}).Required(),
		core.Float(41, &i.Scale.X, 1), // 默认缩放为 1
		core.Float(42, &i.Scale.Y, 1),
		core.Float(43, &i.Scale.Z, 1),
		core.Angle(50, &i.Rotation, 0),
		core.Short(70, &i.Columns, 1),
		core.Short(71, &i.Rows, 1),
		core.Float(44, &i.ColumnSpacing, 0),
		core.Float(45, &i.RowSpacing, 0),
		core.Point3(210, &i.Extrusion, core.ZAxis),
	)
}

// Validate 块名不能为空，缩放不能为 0
func (i *Insert) Validate() error {
	if i.BlockName == "" {
		return fmt.Errorf("%w: INSERT without block name", core.ErrMalformed)
	}
	if i.Scale.X == 0 || i.Scale.Y == 0 || i.Scale.Z == 0 {
		return fmt.Errorf("%w: INSERT %s has zero scale factor", core.ErrDegenerateGeometry, i.BlockName)
	}
	return nil
}

func (i *Insert) Parse(scanner *core.Scanner) error {
	if err := i.parse(scanner); err != nil {
		if core.KindOf(err) != core.KindIO {
			skipAttribs(scanner)
		}
		return err
	}
	return nil
}

func (i *Insert) parse(scanner *core.Scanner) error {
	i.Attributes, i.SeqEnd = nil, nil
	if err := core.Assemble(scanner, i); err != nil {
		return err
	}
	if i.AttribsFollow != 1 {
		return nil
	}

	// 核心逻辑：如果标记了有属性，则继续在当前流中抓取 ATTRIB 直到 SEQEND
	for {
		switch scanner.LastTag.Name() {
		case "ATTRIB":
			attr := CreateEntity("ATTRIB").(*Attrib)
			if err := attr.Parse(scanner); err != nil {
				return err
			}
			i.Attributes = append(i.Attributes, attr)
		case "SEQEND":
			seq := &SeqEnd{BaseEntity: BaseEntity{TypeName: "SEQEND"}}
			if err := core.Assemble(scanner, seq); err != nil {
				return err
			}
			i.SeqEnd = seq
			return nil
		default:
			// 缺少 SEQEND，停在下一个实体上交给调用方
			return nil
		}
	}
}

// skipAttribs 出错后丢弃剩余的 ATTRIB 和 SEQEND，停在下一个记录上，
// 避免属性被当作独立实体读入
func skipAttribs(scanner *core.Scanner) {
	for scanner.Skip() {
		switch scanner.LastTag.Name() {
		case "ATTRIB":
			if !scanner.Next() {
				return
			}
		case "SEQEND":
			if scanner.Next() {
				scanner.Skip()
			}
			return
		default:
			return
		}
	}
}

// Write 写出 INSERT 本身，有属性时继续写出 ATTRIB 序列和 SEQEND
func (i *Insert) Write(w *core.Writer) error {
	if len(i.Attributes) > 0 {
		i.AttribsFollow = 1
	}
	if err := core.Encode(w, i); err != nil {
		return err
	}
	if i.AttribsFollow != 1 {
		return nil
	}
	for _, attr := range i.Attributes {
		if err := Write(w, attr); err != nil {
			return err
		}
	}
	seq := i.SeqEnd
	if seq == nil {
		seq = &SeqEnd{BaseEntity: BaseEntity{TypeName: "SEQEND"}}
		core.Reset(seq)
		seq.LayerName = i.LayerName
	}
	if err := w.WriteValue(0, "SEQEND"); err != nil {
		return err
	}
	return core.Encode(w, seq)
}

func (i *Insert) BBox() core.BBox {
	// Insert 的包围盒比较特殊，通常需要结合 Block 定义计算
	// 这里先返回插入点
	return core.BBox{Min: i.InsertionPoint, Max: i.InsertionPoint}
}
