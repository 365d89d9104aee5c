package entities

import "github.com/zooyer/dxfio/core"

// ProxyClassID ACAD_PROXY_ENTITY 的代理类 ID（组码 90）
const ProxyClassID = 498

// ProxyEntity ACAD_PROXY_ENTITY。
// 组码 310 在 93 之前属于代理图形（见 BaseEntity.Graphics），之后属于实体数据。
type ProxyEntity struct {
	BaseEntity
	ClassID        int      // 90
	AppClassID     int      // 91
	EntityDataSize int      // 93，单位 bit
	EntityData     []string // 310
	ObjectIDs      []uint64 // 340
	EndObjectIDs   int      // 94
	DrawingFormat  int      // 95
	OriginalFormat int      // 70，0 DWG，1 DXF
}

func init() {
	Register("ACAD_PROXY_ENTITY", func() Entity {
		return &ProxyEntity{BaseEntity: BaseEntity{TypeName: "ACAD_PROXY_ENTITY"}}
	})
}

func (p *ProxyEntity) Fields() []core.Field {
	return append(p.entityFields(),
		core.SubclassMarker("AcDbProxyEntity"),
		core.Int(90, &p.ClassID, ProxyClassID).Required(),
		core.Int(91, &p.AppClassID, 0).Required(),
		core.Int(93, &p.EntityDataSize, 0).Required(),
		core.Strings(310, &p.EntityData).After(93),
		core.Hexes(340, &p.ObjectIDs),
		core.Int(94, &p.EndObjectIDs, 0).Required(),
		core.Int(95, &p.DrawingFormat, 0).Since(core.R2000),
		core.Short(70, &p.OriginalFormat, 0).Range(0, 1).Since(core.R2000),
	)
}

func (p *ProxyEntity) Parse(s *core.Scanner) error { return core.Assemble(s, p) }

func (p *ProxyEntity) Write(w *core.Writer) error { return core.Encode(w, p) }

// BBox 代理实体没有可解析的几何
func (p *ProxyEntity) BBox() core.BBox { return core.BBox{} }
