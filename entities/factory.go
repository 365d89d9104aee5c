package entities

import (
	"sort"

	"github.com/zooyer/dxfio/core"
)

const (
	DefaultLayer    = "0"
	DefaultLinetype = "BYLAYER"
	DefaultStyle    = "STANDARD"

	ColorByBlock      = 0
	ColorByLayer      = 256
	LineweightByLayer = -1
)

// Entity 是一切几何实体的接口
type Entity interface {
	core.Record
	Parse(scanner *core.Scanner) error
	Write(w *core.Writer) error
	Type() string
	Layer() string
	BBox() core.BBox
}

// BaseEntity 存放所有实体通用的属性（如 Layer, Color, Handle）
type BaseEntity struct {
	TypeName      string
	Handle        uint64  // 5
	Owner         uint64  // 330
	Paperspace    int     // 67，1 表示图纸空间
	LayerName     string  // 8
	Linetype      string  // 6
	Material      uint64  // 347
	Color         int     // 62，0 BYBLOCK，256 BYLAYER，负值表示图层关闭
	Lineweight    int     // 370
	LinetypeScale float64 // 48
	Visibility    int     // 60，1 表示不可见
	GraphicsSize  int     // 92
	Graphics      []string
	TrueColor     int     // 420
	ColorName     string  // 430
	Transparency  int     // 440
	PlotStyle     uint64  // 390
	ShadowMode    int     // 284
	Elevation     float64 // 38，R12 及以前
	Thickness     float64 // 39
}

func (b *BaseEntity) Type() string { return b.TypeName }

func (b *BaseEntity) Layer() string { return b.LayerName }

// entityFields 所有实体共用的字段，顺序即输出顺序
func (b *BaseEntity) entityFields() []core.Field {
	return []core.Field{
		core.Hex(5, &b.Handle),
		core.Hex(330, &b.Owner).Since(core.R13),
		core.SubclassMarker("AcDbEntity"),
		core.Flags(67, &b.Paperspace, 0).Range(0, 1),
		core.String(8, &b.LayerName, DefaultLayer).Required().FillEmpty(),
		core.String(6, &b.Linetype, DefaultLinetype).FillEmpty(),
		core.Hex(347, &b.Material).Since(core.R2007),
		core.Short(62, &b.Color, ColorByLayer).Range(-256, 256), // 负值表示图层关闭
		core.Short(370, &b.Lineweight, LineweightByLayer).Range(-3, 211).Since(core.R2000),
		core.Float(48, &b.LinetypeScale, 1).Since(core.R13),
		core.Flags(60, &b.Visibility, 0).Range(0, 1).Since(core.R13),
		core.Int(92, &b.GraphicsSize, 0).Since(core.R2000),
		core.Strings(310, &b.Graphics).Since(core.R2000),
		core.Int(420, &b.TrueColor, 0).Since(core.R2004),
		core.String(430, &b.ColorName, "").Since(core.R2004),
		core.Int(440, &b.Transparency, 0).Since(core.R2004),
		core.Hex(390, &b.PlotStyle).Since(core.R2000),
		core.Short(284, &b.ShadowMode, 0).Range(0, 3).Since(core.R2007),
		core.Float(38, &b.Elevation, 0).Until(core.R12),
		core.Float(39, &b.Thickness, 0),
	}
}

// EntityFactory 定义了如何从标签流中创建一个实体
type EntityFactory func() Entity

var registry = map[string]EntityFactory{}

// Register 允许以后动态扩展新的实体类型
func Register(typeName string, factory EntityFactory) {
	registry[typeName] = factory
}

// CreateEntity 根据实体名称生产对应的结构体，字段为默认值
func CreateEntity(typeName string) Entity {
	if factory, ok := registry[typeName]; ok {
		e := factory()
		core.Reset(e)
		return e
	}
	return nil
}

// Types 已注册的实体类型
func Types() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write 写出完整实体：开头的 0 标签 + 字段
func Write(w *core.Writer, e Entity) error {
	if err := w.WriteValue(0, e.Type()); err != nil {
		return err
	}
	return e.Write(w)
}
