package core

import (
	"fmt"
)

// ValueKind 字段值类型
type ValueKind int

const (
	ValueInt    ValueKind = iota + 1 // 十进制整数
	ValueShort                       // 16 位整数
	ValueFlags                       // 标志位
	ValueHex                         // 十六进制句柄
	ValueFloat                       // 浮点
	ValueAngle                       // 角度（度）
	ValueString                      // 字符串，原样保存
	ValuePoint                       // 由 X/Y/Z 三个组码组成的点
	ValueMarker                      // 组码 100 子类标记
	ValueCount                       // 由数组长度推导的计数
	ValueGroup                       // 以某组码开头的重复结构
)

// MaxRepeat 重复字段的默认元素上限
const MaxRepeat = 10000

type binding interface {
	decode(code int, raw string, v Version) error
	encode(codes []int, v Version) []Tag
	isDefault() bool
	reset()
}

type (
	intValuer interface{ intValues() []int }
	filler    interface {
		setFill()
		fillEmpty()
	}
	limiter interface{ setLimit(n int) }
	parent  interface{ children() [][]Field }
)

// Field 描述一个语义字段：组码、值类型、版本可见性、默认值。
// 通过指针绑定到记录自身的存储上，字段表即普通数据。
type Field struct {
	Kind     ValueKind
	Versions VersionRange

	codes     []int
	required  bool
	fillEmpty bool
	ranged    bool
	min, max  int
	after     int
	when      func() bool
	marker    string
	b         binding
}

func newField(kind ValueKind, codes []int, b binding) Field {
	return Field{Kind: kind, codes: codes, b: b}
}

// Code 主组码
func (f Field) Code() int { return f.codes[0] }

// Accepts 判断组码是否属于该字段
func (f Field) Accepts(code int) bool {
	for _, c := range f.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Marker 子类标记名，非标记字段为空
func (f Field) Marker() string { return f.marker }

// IsRequired 是否总是输出
func (f Field) IsRequired() bool { return f.required }

// IsDefault 当前值是否等于默认值
func (f Field) IsDefault() bool { return f.b.isDefault() }

// Reset 恢复默认值
func (f Field) Reset() { f.b.reset() }

// Decode 将原始值写入绑定的存储，不做版本判断
func (f Field) Decode(code int, raw string, v Version) error {
	return f.b.decode(code, raw, v)
}

// Encode 生成该字段的标签，不做版本和默认值判断
func (f Field) Encode(v Version) []Tag {
	return f.b.encode(f.codes, v)
}

// Since v 及以后可见
func (f Field) Since(v Version) Field { f.Versions.Min = v; return f }

// Until v 及以前可见
func (f Field) Until(v Version) Field { f.Versions.Max = v; return f }

// Required 即使等于默认值也输出（如图层 8）
func (f Field) Required() Field { f.required = true; return f }

// FillEmpty 解析后为空时填入默认值（如图层 "0"、线型 "BYLAYER"）
func (f Field) FillEmpty() Field {
	if fl, ok := f.b.(filler); ok {
		fl.setFill()
		f.fillEmpty = true
	}
	return f
}

// Range 整数取值范围 [min, max]
func (f Field) Range(min, max int) Field {
	f.ranged, f.min, f.max = true, min, max
	return f
}

// After 仅在本记录中出现过 code 之后才匹配，用于同一组码先后表示不同数组
func (f Field) After(code int) Field { f.after = code; return f }

// When 条件为假时不输出
func (f Field) When(cond func() bool) Field { f.when = cond; return f }

// Limit 重复字段元素上限
func (f Field) Limit(n int) Field {
	if l, ok := f.b.(limiter); ok {
		l.setLimit(n)
	}
	return f
}

// Int 十进制整数字段
func Int(code int, p *int, def int) Field {
	return newField(ValueInt, []int{code}, &scalar[int]{p: p, def: def, parse: parseInt, format: formatInt})
}

// Short 16 位整数字段
func Short(code int, p *int, def int) Field {
	return newField(ValueShort, []int{code}, &scalar[int]{p: p, def: def, parse: parseShort, format: formatInt})
}

// Flags 标志位字段
func Flags(code int, p *int, def int) Field {
	return newField(ValueFlags, []int{code}, &scalar[int]{p: p, def: def, parse: parseShort, format: formatInt})
}

// Hex 句柄字段，默认 0 表示无
func Hex(code int, p *uint64) Field {
	return newField(ValueHex, []int{code}, &scalar[uint64]{p: p, parse: parseHex, format: formatHex})
}

// Float 浮点字段
func Float(code int, p *float64, def float64) Field {
	return newField(ValueFloat, []int{code}, &scalar[float64]{p: p, def: def, parse: parseFloat, format: formatFloat})
}

// Angle 角度字段（度）
func Angle(code int, p *float64, def float64) Field {
	return newField(ValueAngle, []int{code}, &scalar[float64]{p: p, def: def, parse: parseFloat, format: formatFloat})
}

// String 字符串字段
func String(code int, p *string, def string) Field {
	return newField(ValueString, []int{code}, &scalar[string]{p: p, def: def, parse: parseString, format: formatString})
}

// Point3 三维点，占用 code、code+10、code+20
func Point3(code int, p *Point, def Point) Field {
	return newField(ValuePoint, []int{code, code + 10, code + 20}, &point{p: p, def: def, base: code})
}

// Point2 二维点，占用 code、code+10，Z 保持默认
func Point2(code int, p *Point, def Point) Field {
	return newField(ValuePoint, []int{code, code + 10}, &point{p: p, def: def, base: code})
}

// Strings 重复字符串字段，按出现顺序追加
func Strings(code int, p *[]string) Field {
	return newField(ValueString, []int{code}, &slice[string]{p: p, parse: parseString, format: formatString, limit: MaxRepeat})
}

// Floats 重复浮点字段
func Floats(code int, p *[]float64) Field {
	return newField(ValueFloat, []int{code}, &slice[float64]{p: p, parse: parseFloat, format: formatFloat, limit: MaxRepeat})
}

// Hexes 重复句柄字段
func Hexes(code int, p *[]uint64) Field {
	return newField(ValueHex, []int{code}, &slice[uint64]{p: p, parse: parseHex, format: formatHex, limit: MaxRepeat})
}

// Ints 重复整数字段
func Ints(code int, p *[]int) Field {
	return newField(ValueInt, []int{code}, &slice[int]{p: p, parse: parseInt, format: formatInt, limit: MaxRepeat})
}

// SubclassMarker 组码 100 子类标记，R13 起输出
func SubclassMarker(name string) Field {
	f := newField(ValueMarker, []int{100}, &marker{name: name})
	f.marker = name
	f.required = true
	return f.Since(R13)
}

// Count 由 n() 推导的计数，读取时只校验格式
func Count(code int, n func() int) Field {
	f := newField(ValueCount, []int{code}, &count{n: n})
	f.required = true
	return f
}

// Group 重复结构：start 组码开启一个新元素，其余组码写入最后一个元素。
// fields 返回绑定到元素上的字段表，可以嵌套 Group。
func Group[T any](start int, p *[]T, fields func(*T) []Field) Field {
	var probe T
	codes := []int{start}
	for _, f := range fields(&probe) {
		for _, c := range f.codes {
			if !containsInt(codes, c) {
				codes = append(codes, c)
			}
		}
	}
	return newField(ValueGroup, codes, &group[T]{p: p, start: start, fields: fields, limit: MaxRepeat})
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func parseString(raw string) (string, error) { return raw, nil }

func formatString(s string) string { return s }

type scalar[T comparable] struct {
	p      *T
	def    T
	fill   bool
	parse  func(string) (T, error)
	format func(T) string
}

func (s *scalar[T]) value() T {
	var zero T
	if s.fill && *s.p == zero {
		return s.def
	}
	return *s.p
}

func (s *scalar[T]) decode(_ int, raw string, _ Version) error {
	v, err := s.parse(raw)
	if err != nil {
		return err
	}
	*s.p = v
	return nil
}

func (s *scalar[T]) encode(codes []int, _ Version) []Tag {
	return []Tag{{Code: codes[0], Value: s.format(s.value())}}
}

func (s *scalar[T]) isDefault() bool { return s.value() == s.def }

func (s *scalar[T]) reset() { *s.p = s.def }

func (s *scalar[T]) setFill() { s.fill = true }

func (s *scalar[T]) fillEmpty() {
	var zero T
	if *s.p == zero {
		*s.p = s.def
	}
}

func (s *scalar[T]) intValues() []int {
	if v, ok := any(s.value()).(int); ok {
		return []int{v}
	}
	return nil
}

type point struct {
	p    *Point
	def  Point
	base int
}

func (pt *point) component(code int) *float64 {
	switch code - pt.base {
	case 0:
		return &pt.p.X
	case 10:
		return &pt.p.Y
	case 20:
		return &pt.p.Z
	}
	return nil
}

func (pt *point) decode(code int, raw string, _ Version) error {
	c := pt.component(code)
	if c == nil {
		return fmt.Errorf("%w: group code %d is not a coordinate of %d", ErrMalformed, code, pt.base)
	}
	f, err := parseFloat(raw)
	if err != nil {
		return err
	}
	*c = f
	return nil
}

func (pt *point) encode(codes []int, _ Version) []Tag {
	tags := make([]Tag, 0, len(codes))
	for _, code := range codes {
		tags = append(tags, Tag{Code: code, Value: formatFloat(*pt.component(code))})
	}
	return tags
}

func (pt *point) isDefault() bool { return *pt.p == pt.def }

func (pt *point) reset() { *pt.p = pt.def }

type slice[T any] struct {
	p      *[]T
	parse  func(string) (T, error)
	format func(T) string
	limit  int
}

func (s *slice[T]) decode(code int, raw string, _ Version) error {
	if len(*s.p) >= s.limit {
		return fmt.Errorf("%w: group code %d repeats more than %d times", ErrMalformed, code, s.limit)
	}
	v, err := s.parse(raw)
	if err != nil {
		return err
	}
	*s.p = append(*s.p, v)
	return nil
}

func (s *slice[T]) encode(codes []int, _ Version) []Tag {
	tags := make([]Tag, 0, len(*s.p))
	for _, v := range *s.p {
		tags = append(tags, Tag{Code: codes[0], Value: s.format(v)})
	}
	return tags
}

func (s *slice[T]) isDefault() bool { return len(*s.p) == 0 }

func (s *slice[T]) reset() { *s.p = nil }

func (s *slice[T]) setLimit(n int) { s.limit = n }

func (s *slice[T]) intValues() []int {
	if ints, ok := any(*s.p).([]int); ok {
		return ints
	}
	return nil
}

type marker struct {
	name string
}

func (m *marker) decode(int, string, Version) error { return nil }

func (m *marker) encode(codes []int, _ Version) []Tag {
	return []Tag{{Code: codes[0], Value: m.name}}
}

func (m *marker) isDefault() bool { return false }

func (m *marker) reset() {}

type count struct {
	n func() int
}

func (c *count) decode(_ int, raw string, _ Version) error {
	_, err := parseInt(raw)
	return err
}

func (c *count) encode(codes []int, _ Version) []Tag {
	return []Tag{{Code: codes[0], Value: formatInt(c.n())}}
}

func (c *count) isDefault() bool { return c.n() == 0 }

func (c *count) reset() {}

type group[T any] struct {
	p      *[]T
	start  int
	fields func(*T) []Field
	limit  int
}

func (g *group[T]) decode(code int, raw string, v Version) error {
	if code == g.start || len(*g.p) == 0 {
		if len(*g.p) >= g.limit {
			return fmt.Errorf("%w: group starting at code %d repeats more than %d times", ErrMalformed, g.start, g.limit)
		}
		var elem T
		resetFields(g.fields(&elem))
		*g.p = append(*g.p, elem)
	}
	elem := &(*g.p)[len(*g.p)-1]
	f, _ := lookup(g.fields(elem), code, v, nil)
	if f == nil {
		return nil
	}
	return f.b.decode(code, raw, v)
}

func (g *group[T]) encode(_ []int, v Version) []Tag {
	var tags []Tag
	for i := range *g.p {
		tags = append(tags, encodeFields(g.fields(&(*g.p)[i]), v)...)
	}
	return tags
}

func (g *group[T]) isDefault() bool { return len(*g.p) == 0 }

func (g *group[T]) reset() { *g.p = nil }

func (g *group[T]) setLimit(n int) { g.limit = n }

func (g *group[T]) children() [][]Field {
	tables := make([][]Field, 0, len(*g.p))
	for i := range *g.p {
		tables = append(tables, g.fields(&(*g.p)[i]))
	}
	return tables
}
