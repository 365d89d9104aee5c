package core

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Record 可由字段表驱动读写的记录
type Record interface {
	// Fields 返回绑定到记录自身的字段表，顺序即输出顺序
	Fields() []Field
}

// Validator 记录级别的结构校验，例如退化几何
type Validator interface {
	Validate() error
}

// Outcome 单个标签的解码结果
type Outcome int

const (
	OutcomeAssigned  Outcome = iota + 1 // 已写入字段
	OutcomeGated                        // 组码已知，但当前版本不可见，忽略
	OutcomeUnknown                      // 字段表中没有该组码，跳过
	OutcomeMarker                       // 子类标记匹配
	OutcomeBadMarker                    // 子类标记不匹配
)

// Table 一条记录的字段表和解码状态
type Table struct {
	Entity string
	Fields []Field
	seen   map[int]bool
}

func NewTable(entity string, fields []Field) *Table {
	return &Table{Entity: entity, Fields: fields, seen: make(map[int]bool)}
}

// Reset 所有字段恢复默认值，并清空解码状态
func (t *Table) Reset() {
	resetFields(t.Fields)
	t.seen = make(map[int]bool)
}

// Markers 表中声明的全部子类标记
func (t *Table) Markers() []string {
	var names []string
	for _, f := range t.Fields {
		if f.Kind == ValueMarker {
			names = append(names, f.marker)
		}
	}
	return names
}

// Decode 按组码和版本选择字段并写入值
func (t *Table) Decode(tag Tag, v Version) (Outcome, error) {
	if tag.Code == 100 {
		name := strings.TrimSpace(tag.Value)
		for _, m := range t.Markers() {
			if m == name {
				return OutcomeMarker, nil
			}
		}
		return OutcomeBadMarker, nil
	}

	f, gated := lookup(t.Fields, tag.Code, v, t.seen)
	t.seen[tag.Code] = true
	switch {
	case f != nil:
		if err := f.b.decode(tag.Code, tag.Value, v); err != nil {
			return 0, err
		}
		return OutcomeAssigned, nil
	case gated:
		return OutcomeGated, nil
	}
	return OutcomeUnknown, nil
}

// Encode 按声明顺序输出标签：跳过版本不可见、条件不满足、等于默认值的非必需字段
func (t *Table) Encode(v Version) []Tag {
	return encodeFields(t.Fields, v)
}

// lookup 在字段表中为组码选择当前版本可见的字段。
// After 字段在触发组码出现后优先；gated 表示组码已知但版本不可见。
func lookup(fields []Field, code int, v Version, seen map[int]bool) (f *Field, gated bool) {
	known := false
	for i := range fields {
		fd := &fields[i]
		if !fd.Accepts(code) {
			continue
		}
		known = true
		if !fd.Versions.Contains(v) {
			continue
		}
		if fd.after != 0 {
			if seen[fd.after] {
				return fd, false
			}
			continue
		}
		if f == nil {
			f = fd
		}
	}
	return f, known && f == nil
}

func resetFields(fields []Field) {
	for _, f := range fields {
		f.b.reset()
	}
}

func encodeFields(fields []Field, v Version) []Tag {
	var tags []Tag
	for _, f := range fields {
		if !f.Versions.Contains(v) {
			continue
		}
		if f.when != nil && !f.when() {
			continue
		}
		if !f.required && f.b.isDefault() {
			continue
		}
		tags = append(tags, f.b.encode(f.codes, v)...)
	}
	return tags
}

// check 遍历字段（含嵌套组），fill 为真时填充空值，越界值交给 onRange
func checkFields(fields []Field, fill bool, onRange func(f Field, value int) error) error {
	for _, f := range fields {
		if fill && f.fillEmpty {
			f.b.(filler).fillEmpty()
		}
		if f.ranged {
			if iv, ok := f.b.(intValuer); ok {
				for _, value := range iv.intValues() {
					if value >= f.min && value <= f.max {
						continue
					}
					if err := onRange(f, value); err != nil {
						return err
					}
				}
			}
		}
		if p, ok := f.b.(parent); ok {
			for _, child := range p.children() {
				if err := checkFields(child, fill, onRange); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func rangeError(f Field, value int) error {
	e := newError(KindMalformed, fmt.Errorf("%w: value %d outside [%d, %d]", ErrMalformed, value, f.min, f.max))
	e.Code = f.Code()
	return e
}

// RecordName 记录类型名，用于错误信息
func RecordName(rec Record) string {
	if n, ok := rec.(interface{ Type() string }); ok {
		return n.Type()
	}
	return fmt.Sprintf("%T", rec)
}

// Reset 将记录的所有字段恢复为默认值
func Reset(rec Record) {
	resetFields(rec.Fields())
}

// Assemble 从当前位置读取标签直到组码 0，写入 rec 后执行 finalize。
// 终止的 0 标签留在 s.LastTag 中，交给调用方处理。
func Assemble(s *Scanner, rec Record) error {
	entity := RecordName(rec)
	table := NewTable(entity, rec.Fields())
	table.Reset()

	depth := 0 // 102 {ACAD_XDICTIONARY ... } 应用组嵌套层数
	for {
		if !s.Next() {
			if err := s.Err(); err != nil {
				return s.wrap(err, -1, entity)
			}
			return s.wrap(newError(KindIO, fmt.Errorf("%w: %s not terminated by group code 0", io.ErrUnexpectedEOF, entity)), -1, entity)
		}

		tag := s.LastTag
		if tag.Code == 0 {
			break
		}

		if tag.Code == 102 {
			switch value := strings.TrimSpace(tag.Value); {
			case strings.HasPrefix(value, "{"):
				depth++
			case value == "}" && depth > 0:
				depth--
			}
			continue
		}
		if depth > 0 {
			continue
		}

		outcome, err := table.Decode(tag, s.Version)
		if err != nil {
			return s.wrap(err, tag.Code, entity)
		}
		switch outcome {
		case OutcomeUnknown:
			s.Report(Unrecognized, entity, tag, "")
		case OutcomeBadMarker:
			s.Report(BadSubclassMarker, entity, tag, "expected one of "+strings.Join(table.Markers(), ", "))
		}
	}

	if err := finalize(table.Fields, rec, s); err != nil {
		return s.wrap(err, -1, entity)
	}
	return nil
}

// Finalize 填充默认值，严格检查取值范围，并执行记录自身的校验
func Finalize(rec Record) error {
	err := finalize(rec.Fields(), rec, nil)
	return withEntity(err, RecordName(rec))
}

func finalize(fields []Field, rec Record, s *Scanner) error {
	onRange := rangeError
	if s != nil && s.Lenient() {
		onRange = func(f Field, value int) error {
			s.Report(OutOfRange, RecordName(rec), Tag{Code: f.Code(), Value: formatInt(value)},
				fmt.Sprintf("expected [%d, %d]", f.min, f.max))
			return nil
		}
	}
	if err := checkFields(fields, true, onRange); err != nil {
		return err
	}
	return validate(rec)
}

func validate(rec Record) error {
	v, ok := rec.(Validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		var e *Error
		if errors.As(err, &e) {
			return e
		}
		return newError(KindOf(err), err)
	}
	return nil
}

func withEntity(err error, entity string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Entity == "" {
			e.Entity = entity
		}
		return e
	}
	e = newError(KindOf(err), err)
	e.Entity = entity
	return e
}

// EncodeTags 校验记录后按版本生成标签序列，不含开头的 0 标签。
// 退化几何和越界值会被拒绝，绝不写出。
func EncodeTags(rec Record, v Version) ([]Tag, error) {
	fields := rec.Fields()
	if err := checkFields(fields, false, rangeError); err != nil {
		return nil, withEntity(err, RecordName(rec))
	}
	if err := validate(rec); err != nil {
		return nil, withEntity(err, RecordName(rec))
	}
	return encodeFields(fields, v), nil
}

// Encode 按 w.Version 写出记录
func Encode(w *Writer, rec Record) error {
	tags, err := EncodeTags(rec, w.Version)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Stream, e.Line = w.name, w.line
		}
		return err
	}
	return w.WriteTags(tags)
}

// CheckFields 检查同一组码的字段版本区间是否互斥。
// 子类标记和 After 规则不同的字段不算冲突。
func CheckFields(fields []Field) error {
	for i := range fields {
		for j := i + 1; j < len(fields); j++ {
			a, b := fields[i], fields[j]
			if a.Kind == ValueMarker || b.Kind == ValueMarker || a.after != b.after {
				continue
			}
			for _, code := range a.codes {
				if b.Accepts(code) && overlap(a.Versions, b.Versions) {
					return fmt.Errorf("group code %d: fields %d and %d both visible in %s and %s",
						code, i, j, a.Versions, b.Versions)
				}
			}
		}
	}
	return nil
}

func overlap(a, b VersionRange) bool {
	lo := a.Min
	if b.Min > lo {
		lo = b.Min
	}
	hi := a.Max
	if hi == VersionUnknown || (b.Max != VersionUnknown && b.Max < hi) {
		hi = b.Max
	}
	return hi == VersionUnknown || lo <= hi
}
