// Package tables 读写 TABLES 段中的符号表记录（LTYPE、VIEW、DIMSTYLE）。
// 记录与实体共用 core 中的字段表机制。
package tables

import (
	"fmt"
	"sort"

	"github.com/zooyer/dxfio/core"
)

// Entry 符号表记录
type Entry interface {
	core.Record
	Parse(scanner *core.Scanner) error
	Write(w *core.Writer) error
	Type() string
	Name() string
}

// BaseEntry 所有符号表记录共有的字段
type BaseEntry struct {
	TypeName  string
	Handle    uint64 // 5，DIMSTYLE 为 105
	Owner     uint64 // 330
	EntryName string // 2
	Flags     int    // 70
}

func (b *BaseEntry) Type() string { return b.TypeName }

func (b *BaseEntry) Name() string { return b.EntryName }

func (b *BaseEntry) entryFields(handleCode int, subclass string) []core.Field {
	return []core.Field{
		core.Hex(handleCode, &b.Handle),
		core.Hex(330, &b.Owner).Since(core.R13),
		core.SubclassMarker("AcDbSymbolTableRecord"),
		core.SubclassMarker(subclass),
		core.String(2, &b.EntryName, "").Required(),
		core.Flags(70, &b.Flags, 0).Required(),
	}
}

// validateName 表记录必须有名字
func (b *BaseEntry) validateName() error {
	if b.EntryName == "" {
		return fmt.Errorf("%w: %s entry without name", core.ErrMalformed, b.TypeName)
	}
	return nil
}

type EntryFactory func() Entry

var registry = map[string]EntryFactory{}

// Register 注册表记录类型，名称即 TABLE 的 2 组码
func Register(typeName string, factory EntryFactory) {
	registry[typeName] = factory
}

// CreateEntry 根据表名创建默认记录，未知表返回 nil
func CreateEntry(typeName string) Entry {
	if factory, ok := registry[typeName]; ok {
		e := factory()
		core.Reset(e)
		return e
	}
	return nil
}

// Types 已注册的表类型
func Types() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write 写出完整记录：开头的 0 标签 + 字段
func Write(w *core.Writer, e Entry) error {
	if err := w.WriteValue(0, e.Type()); err != nil {
		return err
	}
	return e.Write(w)
}

// WriteTable 写出 TABLE ... ENDTAB 包裹的一张表
func WriteTable(w *core.Writer, name string, entries []Entry) error {
	tags := []core.Tag{{Code: 0, Value: "TABLE"}, {Code: 2, Value: name}}
	if w.Version >= core.R13 {
		tags = append(tags, core.Tag{Code: 100, Value: "AcDbSymbolTable"})
	}
	tags = append(tags, core.Tag{Code: 70, Value: fmt.Sprint(len(entries))})
	if name == "DIMSTYLE" && w.Version >= core.R13 {
		tags = append(tags, core.Tag{Code: 100, Value: "AcDbDimStyleTable"})
	}
	if err := w.WriteTags(tags); err != nil {
		return err
	}
	for _, e := range entries {
		if err := Write(w, e); err != nil {
			return err
		}
	}
	return w.WriteValue(0, "ENDTAB")
}
