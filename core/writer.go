package core

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
)

// Writer 以 DXF 文本格式逐对写出标签
type Writer struct {
	writer  *bufio.Writer
	Version Version
	name    string
	line    int
	encoder *encoding.Encoder
	err     error
}

// WriterOption 配置 Writer
type WriterOption func(*Writer)

// WithOutputName 设置输出流名称
func WithOutputName(name string) WriterOption {
	return func(w *Writer) { w.name = name }
}

// WithOutputVersion 设置目标版本
func WithOutputVersion(v Version) WriterOption {
	return func(w *Writer) { w.Version = v }
}

// WithOutputEncoding 按代码页编码字符串值，nil 表示 UTF-8 原样输出
func WithOutputEncoding(enc encoding.Encoding) WriterOption {
	return func(w *Writer) {
		if enc != nil {
			w.encoder = enc.NewEncoder()
		}
	}
}

func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	writer := &Writer{
		writer:  bufio.NewWriter(w),
		Version: DefaultVersion,
	}
	for _, opt := range opts {
		opt(writer)
	}
	return writer
}

// WriteTag 写出一对标签，组码右对齐 3 位
func (w *Writer) WriteTag(t Tag) error {
	if w.err != nil {
		return w.err
	}
	value := t.Value
	if w.encoder != nil {
		encoded, err := w.encoder.String(value)
		if err != nil {
			w.err = w.fail(fmt.Errorf("%w: cannot encode %q: %v", ErrMalformed, value, err), KindMalformed, t.Code)
			return w.err
		}
		value = encoded
	}
	if _, err := fmt.Fprintf(w.writer, "%3d\n%s\n", t.Code, value); err != nil {
		w.err = w.fail(err, KindIO, t.Code)
		return w.err
	}
	w.line += 2
	return nil
}

// WriteTags 依次写出多个标签
func (w *Writer) WriteTags(tags []Tag) error {
	for _, t := range tags {
		if err := w.WriteTag(t); err != nil {
			return err
		}
	}
	return nil
}

// WriteValue 写出 (code, value) 的便捷方法
func (w *Writer) WriteValue(code int, value string) error {
	return w.WriteTag(Tag{Code: code, Value: value})
}

func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.writer.Flush(); err != nil {
		w.err = w.fail(err, KindIO, -1)
	}
	return w.err
}

// Line 已写出的行数
func (w *Writer) Line() int {
	return w.line
}

func (w *Writer) Name() string {
	return w.name
}

func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) fail(err error, kind ErrorKind, code int) *Error {
	e := newError(kind, err)
	e.Stream, e.Line, e.Code = w.name, w.line, code
	return e
}
