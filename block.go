package dxfio

import (
	"fmt"

	"github.com/zooyer/dxfio/core"
	"github.com/zooyer/dxfio/entities"
)

// Block BLOCKS 段中的块定义，INSERT 通过大写名称引用
type Block struct {
	Handle      uint64     // 5
	Owner       uint64     // 330
	LayerName   string     // 8
	Name        string     // 2
	Flags       int        // 70
	BasePoint   core.Point // 10
	XrefPath    string     // 1
	Description string     // 4
	Entities    []entities.Entity
	End         *BlockEnd
}

// BlockEnd ENDBLK 记录
type BlockEnd struct {
	Handle    uint64
	Owner     uint64
	LayerName string
}

func NewBlock(name string, base core.Point, ents ...entities.Entity) *Block {
	b := &Block{}
	core.Reset(b)
	b.Name, b.BasePoint, b.Entities = name, base, ents
	return b
}

func (b *Block) Type() string { return "BLOCK" }

func (b *Block) Fields() []core.Field {
	return []core.Field{
		core.Hex(5, &b.Handle),
		core.Hex(330, &b.Owner).Since(core.R13),
		core.SubclassMarker("AcDbEntity"),
		core.String(8, &b.LayerName, entities.DefaultLayer).Required().FillEmpty(),
		core.SubclassMarker("AcDbBlockBegin"),
		core.String(2, &b.Name, "").Required(),
		core.Flags(70, &b.Flags, 0).Required().Range(0, 127),
		core.Point3(10, &b.BasePoint, core.Point{}).Required(),
		core.String(3, &b.Name, "").Required(), // 块名重复一次
		core.String(1, &b.XrefPath, ""),
		core.String(4, &b.Description, "").Since(core.R2000),
	}
}

func (b *Block) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: BLOCK without name", core.ErrMalformed)
	}
	return nil
}

func (b *Block) BBox() core.BBox {
	var box core.BBox
	for i, e := range b.Entities {
		if i == 0 {
			box = e.BBox()
			continue
		}
		eb := e.BBox()
		box = box.Extend(eb.Min).Extend(eb.Max)
	}
	return box
}

func (e *BlockEnd) Type() string { return "ENDBLK" }

func (e *BlockEnd) Fields() []core.Field {
	return []core.Field{
		core.Hex(5, &e.Handle),
		core.Hex(330, &e.Owner).Since(core.R13),
		core.SubclassMarker("AcDbEntity"),
		core.String(8, &e.LayerName, entities.DefaultLayer).Required().FillEmpty(),
		core.SubclassMarker("AcDbBlockEnd"),
	}
}

// write BLOCK 记录、块内实体、ENDBLK
func (b *Block) write(w *core.Writer) error {
	if err := w.WriteValue(0, "BLOCK"); err != nil {
		return err
	}
	if err := core.Encode(w, b); err != nil {
		return err
	}
	for _, e := range b.Entities {
		if err := entities.Write(w, e); err != nil {
			return err
		}
	}
	end := b.End
	if end == nil {
		end = &BlockEnd{LayerName: b.LayerName}
	}
	if err := w.WriteValue(0, "ENDBLK"); err != nil {
		return err
	}
	return core.Encode(w, end)
}
