// Package dxfio 读写 DXF 文档：HEADER 中的版本和代码页、TABLES、BLOCKS、ENTITIES。
// 单个记录的解析和写出由 core 的字段表完成，这里只负责段的遍历和错误恢复。
package dxfio

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/zooyer/dxfio/core"
	"github.com/zooyer/dxfio/entities"
	"github.com/zooyer/dxfio/tables"
)

type Document struct {
	Version   core.Version
	CodePage  string // $DWGCODEPAGE
	LTypes    []*tables.LType
	Views     []*tables.View
	DimStyles map[string]*tables.DimStyle
	Blocks    map[string]*Block
	Entities  []entities.Entity

	// Issues 开启 SkipInvalid 时被跳过的记录错误
	Issues []error
}

func New(version core.Version) *Document {
	return &Document{
		Version:   version,
		DimStyles: make(map[string]*tables.DimStyle),
		Blocks:    make(map[string]*Block),
	}
}

type loader struct {
	doc     *Document
	scanner *core.Scanner
	config  *Config
	logger  logrus.FieldLogger
}

// walk 依次处理记录直到遇到 end（或 ENDSEC/EOF）。
// record 返回时 LastTag 应停在下一个 0 标签上；出错时按配置跳过该记录。
func (l *loader) walk(end string, record func(name string) error) error {
	s := l.scanner
	for {
		if !s.Skip() {
			return l.eof(end)
		}
		name := s.LastTag.Name()
		if name == end || name == "ENDSEC" || name == "EOF" {
			return nil
		}

		err := record(name)
		if err == nil {
			continue
		}
		if core.KindOf(err) == core.KindIO || !l.config.SkipInvalid {
			return err
		}
		l.doc.Issues = append(l.doc.Issues, err)
		l.logger.WithFields(logrus.Fields{
			"function": "walk",
			"record":   name,
			"error":    err.Error(),
		}).Warn("Skipping invalid record")
	}
}

func (l *loader) eof(expect string) error {
	if err := l.scanner.Err(); err != nil {
		return err
	}
	return &core.Error{
		Kind:   core.KindIO,
		Stream: l.scanner.Name(),
		Line:   l.scanner.Line(),
		Code:   -1,
		Err:    fmt.Errorf("%w: missing %s", io.ErrUnexpectedEOF, expect),
	}
}

// skip 跳过不支持的记录，停在下一个 0 标签上
func (l *loader) skip(name string) error {
	l.scanner.Report(core.Unrecognized, name, l.scanner.LastTag, "unsupported record")
	if !l.scanner.Next() {
		return l.eof("group code 0")
	}
	return nil
}

func (l *loader) parseHeader() error {
	s := l.scanner
	var variable string
	for s.Next() {
		tag := s.LastTag
		switch tag.Code {
		case 0:
			if tag.Name() == "ENDSEC" {
				return nil
			}
			continue
		case 9:
			variable = tag.Name()
			continue
		}

		switch variable {
		case "$ACADVER":
			v, err := core.ParseVersion(tag.Value)
			if err != nil {
				// 比 R2010 新的版本按 R2010 读取
				v = core.R2010
				s.Report(core.Unrecognized, "HEADER", tag, "unknown $ACADVER, reading as "+v.String())
			}
			l.doc.Version, s.Version = v, v
		case "$DWGCODEPAGE":
			l.doc.CodePage = strings.TrimSpace(tag.Value)
			if l.config.CodePage != "" || s.Version.UTF8() {
				continue
			}
			enc, err := core.CodePage(l.doc.CodePage)
			if err != nil {
				l.logger.WithFields(logrus.Fields{
					"function": "parseHeader",
					"codepage": l.doc.CodePage,
				}).Warn("Unsupported code page, strings are kept as is")
				continue
			}
			s.SetEncoding(enc)
		}
	}
	return l.eof("ENDSEC")
}

func (l *loader) parseTables() error {
	s := l.scanner
	for {
		if !s.Skip() {
			return l.eof("ENDSEC")
		}
		switch s.LastTag.Name() {
		case "ENDSEC":
			return nil
		case "EOF":
			return l.eof("ENDSEC")
		case "TABLE":
			if !s.Next() {
				return l.eof("TABLE name")
			}
			tableName := s.LastTag.Name()
			if err := l.walk("ENDTAB", func(name string) error { return l.parseEntry(tableName, name) }); err != nil {
				return err
			}
			if s.LastTag.Name() != "ENDTAB" {
				// 缺少 ENDTAB，停在 ENDSEC 上
				continue
			}
		}
		// 跳过 ENDTAB 或其他 0 标签
		if !s.Next() {
			return l.eof("ENDSEC")
		}
	}
}

func (l *loader) parseEntry(table, name string) error {
	entry := tables.CreateEntry(name)
	if entry == nil || name != table {
		return l.skip(name)
	}
	if err := entry.Parse(l.scanner); err != nil {
		return err
	}
	switch e := entry.(type) {
	case *tables.LType:
		l.doc.LTypes = append(l.doc.LTypes, e)
	case *tables.View:
		l.doc.Views = append(l.doc.Views, e)
	case *tables.DimStyle:
		l.doc.DimStyles[e.Name()] = e
	}
	return nil
}

func (l *loader) parseBlocks() error {
	return l.walk("ENDSEC", func(name string) error {
		if name != "BLOCK" {
			return l.skip(name)
		}
		block := &Block{}
		if err := core.Assemble(l.scanner, block); err != nil {
			return err
		}
		if err := l.walk("ENDBLK", l.entity(&block.Entities)); err != nil {
			return err
		}
		if l.scanner.LastTag.Name() == "ENDBLK" {
			block.End = &BlockEnd{}
			if err := core.Assemble(l.scanner, block.End); err != nil {
				return err
			}
		}
		l.doc.Blocks[strings.ToUpper(block.Name)] = block
		return nil
	})
}

// entity 返回把实体追加到 list 的记录处理函数
func (l *loader) entity(list *[]entities.Entity) func(name string) error {
	return func(name string) error {
		ent := entities.CreateEntity(name)
		if ent == nil {
			return l.skip(name)
		}
		if err := ent.Parse(l.scanner); err != nil {
			return err
		}
		*list = append(*list, ent)
		return nil
	}
}

// skipSection 跳过不解析的段，如 CLASSES、OBJECTS
func (l *loader) skipSection() error {
	s := l.scanner
	for s.Next() {
		if s.LastTag.Code == 0 && s.LastTag.Name() == "ENDSEC" {
			return nil
		}
	}
	return l.eof("ENDSEC")
}

func Open(filename string) (*Document, error) {
	return OpenWith(filename, DefaultConfig())
}

func OpenWith(filename string, cfg *Config) (doc *Document, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &core.Error{Kind: core.KindIO, Stream: filename, Code: -1, Err: err}
	}

	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}()

	return load(file, filename, cfg)
}

func Load(reader io.Reader) (*Document, error) {
	return LoadWith(reader, DefaultConfig())
}

func LoadWith(reader io.Reader, cfg *Config) (*Document, error) {
	return load(reader, "", cfg)
}

func load(reader io.Reader, name string, cfg *Config) (*Document, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger()
	opts := []core.ScannerOption{
		core.WithName(name),
		core.WithSink(&core.LogSink{Logger: logger}),
	}
	if v := cfg.version(); v != core.VersionUnknown {
		opts = append(opts, core.WithVersion(v))
	}
	if cfg.CodePage != "" {
		enc, _ := core.CodePage(cfg.CodePage)
		opts = append(opts, core.WithEncoding(enc))
	}
	if cfg.LenientRanges {
		opts = append(opts, core.WithLenientRanges())
	}

	var (
		scanner = core.NewScanner(reader, opts...)
		l       = &loader{doc: New(scanner.Version), scanner: scanner, config: cfg, logger: logger}
	)
	logger.WithFields(logrus.Fields{
		"function": "Load",
		"stream":   name,
		"config":   cfg.String(),
	}).Debug("Loading document")

	for scanner.Next() {
		tag := scanner.LastTag
		if tag.Code != 0 {
			continue
		}
		value := tag.Name()
		if value == "EOF" {
			break
		}
		if value != "SECTION" {
			continue
		}
		if !scanner.Next() {
			break
		}

		var err error
		switch sectionName := scanner.LastTag.Name(); sectionName {
		case "HEADER":
			err = l.parseHeader()
		case "TABLES":
			err = l.parseTables()
		case "BLOCKS":
			err = l.parseBlocks()
		case "ENTITIES":
			err = l.walk("ENDSEC", l.entity(&l.doc.Entities))
		default:
			err = l.skipSection()
		}
		if err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"function": "Load",
		"stream":   name,
		"version":  l.doc.Version.String(),
		"entities": len(l.doc.Entities),
		"blocks":   len(l.doc.Blocks),
		"issues":   len(l.doc.Issues),
	}).Debug("Document loaded")

	return l.doc, nil
}

// Write 按文档版本写出，版本未知时使用 core.DefaultVersion
func (d *Document) Write(writer io.Writer) error {
	return d.WriteWith(writer, DefaultConfig())
}

func (d *Document) WriteWith(writer io.Writer, cfg *Config) error {
	return d.write(writer, "", cfg)
}

func (d *Document) Save(filename string) error {
	return d.SaveWith(filename, DefaultConfig())
}

func (d *Document) SaveWith(filename string, cfg *Config) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return &core.Error{Kind: core.KindIO, Stream: filename, Code: -1, Err: err}
	}

	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}()

	return d.write(file, filename, cfg)
}

func (d *Document) write(writer io.Writer, name string, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	version := d.Version
	if v := cfg.version(); v != core.VersionUnknown {
		version = v
	}
	if version == core.VersionUnknown {
		version = core.DefaultVersion
	}

	codePage := d.CodePage
	if cfg.CodePage != "" {
		codePage = cfg.CodePage
	}
	opts := []core.WriterOption{core.WithOutputName(name), core.WithOutputVersion(version)}
	if !version.UTF8() {
		// 读入时不支持的代码页原样保留，写出时同样不转换
		enc, err := core.CodePage(codePage)
		if err != nil {
			cfg.Logger().WithFields(logrus.Fields{
				"function": "Write",
				"codepage": codePage,
			}).Warn("Unsupported code page, strings are written as is")
		}
		opts = append(opts, core.WithOutputEncoding(enc))
	}

	w := core.NewWriter(writer, opts...)
	steps := []func(*core.Writer) error{
		func(w *core.Writer) error { return d.writeHeader(w, codePage) },
		d.writeTables,
		d.writeBlocks,
		d.writeEntities,
	}
	for _, step := range steps {
		if err := step(w); err != nil {
			return err
		}
	}
	if err := w.WriteValue(0, "EOF"); err != nil {
		return err
	}

	cfg.Logger().WithFields(logrus.Fields{
		"function": "Write",
		"stream":   name,
		"version":  version.String(),
		"lines":    w.Line(),
	}).Debug("Document written")
	return w.Flush()
}

func section(w *core.Writer, name string, body func() error) error {
	if err := w.WriteTags([]core.Tag{{Code: 0, Value: "SECTION"}, {Code: 2, Value: name}}); err != nil {
		return err
	}
	if err := body(); err != nil {
		return err
	}
	return w.WriteValue(0, "ENDSEC")
}

func (d *Document) writeHeader(w *core.Writer, codePage string) error {
	return section(w, "HEADER", func() error {
		tags := []core.Tag{{Code: 9, Value: "$ACADVER"}, {Code: 1, Value: w.Version.ACADVER()}}
		if codePage != "" {
			tags = append(tags, core.Tag{Code: 9, Value: "$DWGCODEPAGE"}, core.Tag{Code: 3, Value: codePage})
		}
		return w.WriteTags(tags)
	})
}

func (d *Document) writeTables(w *core.Writer) error {
	return section(w, "TABLES", func() error {
		var ltypes, views, styles []tables.Entry
		for _, e := range d.LTypes {
			ltypes = append(ltypes, e)
		}
		for _, e := range d.Views {
			views = append(views, e)
		}
		names := make([]string, 0, len(d.DimStyles))
		for name := range d.DimStyles {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			styles = append(styles, d.DimStyles[name])
		}

		for _, table := range []struct {
			name    string
			entries []tables.Entry
		}{
			{"LTYPE", ltypes},
			{"VIEW", views},
			{"DIMSTYLE", styles},
		} {
			if len(table.entries) == 0 {
				continue
			}
			if err := tables.WriteTable(w, table.name, table.entries); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Document) writeBlocks(w *core.Writer) error {
	return section(w, "BLOCKS", func() error {
		names := make([]string, 0, len(d.Blocks))
		for name := range d.Blocks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := d.Blocks[name].write(w); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Document) writeEntities(w *core.Writer) error {
	return section(w, "ENTITIES", func() error {
		for _, e := range d.Entities {
			if err := entities.Write(w, e); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddBlock 加入块定义，名称按大写登记
func (d *Document) AddBlock(b *Block) {
	if d.Blocks == nil {
		d.Blocks = make(map[string]*Block)
	}
	d.Blocks[strings.ToUpper(b.Name)] = b
}

// AddDimStyle 加入标注样式，名称按大写登记
func (d *Document) AddDimStyle(s *tables.DimStyle) {
	if d.DimStyles == nil {
		d.DimStyles = make(map[string]*tables.DimStyle)
	}
	s.EntryName = strings.ToUpper(s.EntryName)
	d.DimStyles[s.EntryName] = s
}
