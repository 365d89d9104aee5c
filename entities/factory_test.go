package entities

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zooyer/dxfio/core"
)

// stream 把 "code value" 成对的参数拼成 DXF 文本
func stream(pairs ...any) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&b, "%v\n%v\n", pairs[i], pairs[i+1])
	}
	return b.String()
}

// parse 读取第一个实体，返回实体、扫描器和诊断
func parse(t *testing.T, v core.Version, text string) (Entity, *core.Scanner, *core.Collector, error) {
	t.Helper()
	sink := &core.Collector{}
	s := core.NewScanner(strings.NewReader(text), core.WithVersion(v), core.WithSink(sink), core.WithName("test.dxf"))
	require.True(t, s.Next(), "读取开头标签失败")
	require.Equal(t, 0, s.LastTag.Code)
	e := CreateEntity(s.LastTag.Value)
	require.NotNil(t, e, "未注册的实体 %s", s.LastTag.Value)
	err := e.Parse(s)
	return e, s, sink, err
}

// write 按版本写出实体并追加 EOF，方便再次读取
func write(t *testing.T, v core.Version, e Entity) string {
	t.Helper()
	var buf bytes.Buffer
	w := core.NewWriter(&buf, core.WithOutputVersion(v))
	require.NoError(t, Write(w, e))
	require.NoError(t, w.WriteValue(0, "EOF"))
	require.NoError(t, w.Flush())
	return buf.String()
}

func roundTrip(t *testing.T, v core.Version, e Entity) Entity {
	t.Helper()
	out, s, _, err := parse(t, v, write(t, v, e))
	require.NoError(t, err)
	require.Equal(t, core.Tag{Code: 0, Value: "EOF"}, s.LastTag, "终止标签必须留给调用方")
	return out
}

func TestScenario_LineDecode(t *testing.T) {
	e, s, _, err := parse(t, core.R12, stream(0, "LINE", 5, "1A", 8, "0", 10, 1, 20, 2, 30, 0, 11, 3, 21, 4, 31, 0, 0, "EOF"))
	require.NoError(t, err)

	line := e.(*Line)
	assert.Equal(t, uint64(0x1A), line.Handle)
	assert.Equal(t, "0", line.Layer())
	assert.Equal(t, core.Point{X: 1, Y: 2}, line.Start)
	assert.Equal(t, core.Point{X: 3, Y: 4}, line.End)
	assert.Equal(t, ColorByLayer, line.Color)
	assert.Equal(t, "EOF", s.LastTag.Value)
}

func TestScenario_LineDegenerate(t *testing.T) {
	_, _, _, err := parse(t, core.R12, stream(0, "LINE", 5, "1A", 8, "0", 10, 1, 20, 2, 30, 0, 11, 1, 21, 2, 31, 0, 0, "EOF"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDegenerateGeometry)
	assert.Equal(t, core.KindDegenerateGeometry, core.KindOf(err))

	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "LINE", e.Entity)
	assert.Equal(t, "test.dxf", e.Stream)
}

func TestScenario_DefaultColorSuppressed(t *testing.T) {
	line := NewLine(core.Point{X: 1, Y: 2}, core.Point{X: 3, Y: 4})
	out := write(t, core.R12, line)
	assert.NotContains(t, out, " 62\n")
	assert.Contains(t, out, "  8\n0\n", "图层总是输出")

	line.Color = 1
	out = write(t, core.R12, line)
	assert.Contains(t, out, " 62\n1\n")
}

func TestDecode_LayerOffColor(t *testing.T) {
	// 颜色为负表示所在图层关闭
	e, _, _, err := parse(t, core.R2000, stream(0, "LINE", 8, "0", 62, -7, 10, 0, 20, 0, 11, 1, 21, 0, 0, "EOF"))
	require.NoError(t, err)
	assert.Equal(t, -7, e.(*Line).Color)

	out := write(t, core.R2000, e)
	assert.Contains(t, out, " 62\n-7\n")
	assert.Equal(t, -7, roundTrip(t, core.R2000, e).(*Line).Color)
}

func TestDecode_DefaultsFilled(t *testing.T) {
	e, _, _, err := parse(t, core.R2000, stream(0, "LINE", 8, "", 10, 0, 20, 0, 11, 1, 21, 1, 0, "EOF"))
	require.NoError(t, err)
	line := e.(*Line)
	assert.Equal(t, DefaultLayer, line.LayerName)
	assert.Equal(t, DefaultLinetype, line.Linetype)
	assert.Equal(t, 1.0, line.LinetypeScale)
	assert.Equal(t, LineweightByLayer, line.Lineweight)
	assert.Equal(t, core.ZAxis, line.Extrusion)
}

func TestDecode_UnknownCodeAndMarker(t *testing.T) {
	e, _, sink, err := parse(t, core.R2000, stream(
		0, "LINE", 8, "WALL",
		100, "AcDbEntity", 100, "AcDbCircle",
		999, "comment", 102, "{ACAD_REACTORS", 330, "1F", 102, "}",
		10, 0, 20, 0, 11, 5, 21, 0, 0, "EOF"))
	require.NoError(t, err)
	assert.Equal(t, "WALL", e.Layer())
	assert.Equal(t, 1, sink.Count(core.Unrecognized))
	assert.Equal(t, 1, sink.Count(core.BadSubclassMarker))
	assert.Zero(t, e.(*Line).Owner, "102 组中的内容跳过")
}

func TestDecode_VersionGated(t *testing.T) {
	// R12 中 370 不可见，R2000 中 38 不可见
	e, _, sink, err := parse(t, core.R12, stream(0, "LINE", 8, "0", 370, 13, 38, 2.5, 10, 0, 20, 0, 11, 1, 21, 0, 0, "EOF"))
	require.NoError(t, err)
	assert.Equal(t, LineweightByLayer, e.(*Line).Lineweight)
	assert.Equal(t, 2.5, e.(*Line).Elevation)
	assert.Zero(t, sink.Count(core.Unrecognized))

	e, _, _, err = parse(t, core.R2000, stream(0, "LINE", 8, "0", 370, 13, 38, 2.5, 10, 0, 20, 0, 11, 1, 21, 0, 0, "EOF"))
	require.NoError(t, err)
	assert.Equal(t, 13, e.(*Line).Lineweight)
	assert.Zero(t, e.(*Line).Elevation)
}

func TestDecode_OutOfRange(t *testing.T) {
	text := stream(0, "LINE", 8, "0", 62, 300, 10, 0, 20, 0, 11, 1, 21, 0, 0, "EOF")
	_, _, _, err := parse(t, core.R12, text)
	assert.ErrorIs(t, err, core.ErrMalformed)

	sink := &core.Collector{}
	s := core.NewScanner(strings.NewReader(text), core.WithSink(sink), core.WithLenientRanges())
	require.True(t, s.Next())
	line := CreateEntity("LINE")
	require.NoError(t, line.Parse(s))
	assert.Equal(t, 1, sink.Count(core.OutOfRange))
}

func TestDecode_MalformedValue(t *testing.T) {
	_, s, _, err := parse(t, core.R12, stream(0, "LINE", 8, "0", 10, "abc", 20, 0, 11, 1, 21, 0, 0, "LINE", 0, "EOF"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMalformed)

	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 10, e.Code)
	assert.Equal(t, 6, e.Line)

	// 恢复到下一个记录
	require.True(t, s.Skip())
	assert.Equal(t, core.Tag{Code: 0, Value: "LINE"}, s.LastTag)
}

func TestEncode_RejectsInvalid(t *testing.T) {
	var buf bytes.Buffer
	w := core.NewWriter(&buf, core.WithOutputName("out.dxf"))

	line := NewLine(core.Point{X: 1}, core.Point{X: 1})
	err := line.Write(w)
	assert.ErrorIs(t, err, core.ErrDegenerateGeometry)

	line = NewLine(core.Point{}, core.Point{X: 1})
	line.Color = -5
	err = line.Write(w)
	assert.ErrorIs(t, err, core.ErrMalformed)

	require.NoError(t, w.Flush())
	assert.Empty(t, buf.String(), "无效实体不能写出任何内容")
}

func TestEncode_VersionGating(t *testing.T) {
	line := NewLine(core.Point{}, core.Point{X: 1})
	line.Lineweight = 25
	line.Elevation = 3

	r12 := write(t, core.R12, line)
	assert.NotContains(t, r12, "100\n")
	assert.NotContains(t, r12, "370\n")
	assert.Contains(t, r12, " 38\n3.000000\n")

	r2000 := write(t, core.R2000, line)
	assert.Contains(t, r2000, "100\nAcDbEntity\n")
	assert.Contains(t, r2000, "100\nAcDbLine\n")
	assert.Contains(t, r2000, "370\n25\n")
	assert.NotContains(t, r2000, " 38\n")
}

// samples 每种注册类型一个非默认值的实例，只使用所有版本都可见的字段
func samples() map[string]Entity {
	line := NewLine(core.Point{X: 1, Y: 2, Z: 3}, core.Point{X: 4, Y: 5, Z: 6})
	line.LayerName, line.Color, line.Thickness = "WALL", 1, 0.5

	face := NewFace3D(core.Point{}, core.Point{X: 1}, core.Point{X: 1, Y: 1})
	face.EdgeFlags = SecondEdgeInvisible | FourthEdgeInvisible

	body := NewBody("line one", "line two")
	body.AdditionalData = []string{"tail"}
	region := CreateEntity("REGION").(*Region)
	region.ProprietaryData = []string{"region"}

	attrib := NewAttrib("序号", "42", core.Point{X: 1, Y: 1}, 2.5)
	attrib.Flags = AttribInvisible
	attrib.HAlign, attrib.AlignPoint = 1, core.Point{X: 2, Y: 1}

	proxy := CreateEntity("ACAD_PROXY_ENTITY").(*ProxyEntity)
	proxy.AppClassID, proxy.EntityDataSize, proxy.EndObjectIDs = 500, 64, 0
	proxy.EntityData = []string{"DEADBEEF"}
	proxy.ObjectIDs = []uint64{0x2A}

	mline := NewMLine(core.Point{}, core.Point{X: 10})
	mline.StyleElements = 2
	for i := range mline.Vertices {
		mline.Vertices[i].Direction = core.Point{X: 1}
		mline.Vertices[i].Miter = core.Point{Y: 1}
		mline.Vertices[i].Elements = []MLineElement{{Params: []float64{0, 0.5}}, {Params: []float64{-0.5}, AreaFill: []float64{1}}}
	}

	insert := NewInsert("DOOR", core.Point{X: 5, Y: 5})
	insert.Scale = core.Point{X: 2, Y: 2, Z: 1}
	insert.Rotation = 90

	dim := NewDimension(core.Point{}, core.Point{X: 10}, core.Point{X: 10, Y: 5}, 0)
	dim.Text = "<>"

	return map[string]Entity{
		"LINE":              line,
		"3DLINE":            NewLine3D(core.Point{}, core.Point{Z: 1}),
		"3DFACE":            face,
		"BODY":              body,
		"REGION":            region,
		"3DSOLID":           NewSolid3D("solid"),
		"ATTRIB":            attrib,
		"ACAD_PROXY_ENTITY": proxy,
		"MLINE":             mline,
		"XLINE":             NewXLine(core.Point{X: 1}, core.Point{Y: 1}),
		"RAY":               NewRay(core.Point{}, core.Point{X: 1}),
		"INSERT":            insert,
		"DIMENSION":         dim,
		"LWPOLYLINE":        NewLWPolyline(true, core.Point{}, core.Point{X: 1}, core.Point{X: 1, Y: 1}),
	}
}

func TestRoundTrip_AllTypes(t *testing.T) {
	all := samples()
	for _, name := range Types() {
		require.Contains(t, all, name, "缺少 %s 的样例", name)
	}
	for _, v := range []core.Version{core.R12, core.R13, core.R2000, core.R2010} {
		for name, e := range all {
			t.Run(name+"/"+v.String(), func(t *testing.T) {
				got := roundTrip(t, v, e)
				assert.Equal(t, e, got)
			})
		}
	}
}

func TestCheckFields_AllTypes(t *testing.T) {
	for name, e := range samples() {
		assert.NoError(t, core.CheckFields(e.Fields()), name)
	}
}

func TestCreateEntity(t *testing.T) {
	assert.Nil(t, CreateEntity("CIRCLE"))

	e := CreateEntity("LINE")
	require.NotNil(t, e)
	assert.Equal(t, "LINE", e.Type())
	assert.Equal(t, DefaultLayer, e.Layer())
	assert.Equal(t, core.ZAxis, e.(*Line).Extrusion)
}
