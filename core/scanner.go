package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
)

// Scanner 逐个读取 (组码, 值) 标签对，并记录行号、版本上下文。不可并发使用。
type Scanner struct {
	reader  *bufio.Reader
	LastTag Tag
	Version Version
	err     error
	name    string
	line    int
	decoder *encoding.Decoder
	sink    Sink
	lenient bool
}

// ScannerOption 配置 Scanner
type ScannerOption func(*Scanner)

// WithName 设置流名称，用于错误和诊断
func WithName(name string) ScannerOption {
	return func(s *Scanner) { s.name = name }
}

// WithVersion 设置版本上下文
func WithVersion(v Version) ScannerOption {
	return func(s *Scanner) { s.Version = v }
}

// WithEncoding 按代码页解码字符串值
func WithEncoding(enc encoding.Encoding) ScannerOption {
	return func(s *Scanner) { s.SetEncoding(enc) }
}

// WithSink 设置诊断接收者，默认输出到 logrus
func WithSink(sink Sink) ScannerOption {
	return func(s *Scanner) { s.sink = sink }
}

// WithLenientRanges 越界的枚举/标志位只告警，不拒绝记录
func WithLenientRanges() ScannerOption {
	return func(s *Scanner) { s.lenient = true }
}

func NewScanner(r io.Reader, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		reader:  bufio.NewReader(r),
		Version: DefaultVersion,
		sink:    NewLogSink(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetEncoding 切换字符串解码，nil 表示不转换。读到 $DWGCODEPAGE 后可调用。
func (s *Scanner) SetEncoding(enc encoding.Encoding) {
	if enc == nil {
		s.decoder = nil
		return
	}
	s.decoder = enc.NewDecoder()
}

func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}

	// 1. 读取 Code 行，跳过空行
	var codeStr string
	for {
		codeLine, err := s.reader.ReadString('\n')
		if err != nil && !(err == io.EOF && codeLine != "") {
			if err != io.EOF {
				s.err = s.fail(KindIO, err)
			}
			return false
		}
		s.line++
		if codeStr = strings.TrimSpace(codeLine); codeStr != "" {
			break
		}
		if err == io.EOF {
			return false
		}
	}

	code, err := strconv.Atoi(codeStr)
	if err != nil {
		s.err = s.fail(KindMalformed, fmt.Errorf("%w: group code %q", ErrMalformed, codeStr))
		return false
	}

	// 2. 读取 Value 行
	valueLine, err := s.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && valueLine != "") {
		// Value 行如果 EOF 也是不完整的
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		s.err = s.fail(KindIO, err)
		return false
	}
	s.line++

	// 去掉行尾的换行符，但保留 Value 开头的空格（DXF 规范要求）
	value := strings.TrimRight(valueLine, "\r\n")
	if s.decoder != nil {
		if decoded, err := s.decoder.String(value); err == nil {
			value = decoded
		}
	}

	s.LastTag = Tag{Code: code, Value: value}
	return true
}

// Skip 前进到下一个组码 0 标签，用于跳过损坏的记录
func (s *Scanner) Skip() bool {
	for s.LastTag.Code != 0 {
		if !s.Next() {
			return false
		}
	}
	return true
}

func (s *Scanner) Err() error {
	return s.err
}

// Line 已读取的行数，即最后一个值所在行
func (s *Scanner) Line() int {
	return s.line
}

func (s *Scanner) Name() string {
	return s.name
}

// Lenient 是否宽松处理越界值
func (s *Scanner) Lenient() bool {
	return s.lenient
}

// Report 发送诊断
func (s *Scanner) Report(kind DiagnosticKind, entity string, tag Tag, msg string) {
	if s.sink == nil {
		return
	}
	s.sink.Report(Diagnostic{
		Kind:    kind,
		Stream:  s.name,
		Line:    s.line,
		Entity:  entity,
		Tag:     tag,
		Message: msg,
	})
}

func (s *Scanner) fail(kind ErrorKind, err error) *Error {
	e := newError(kind, err)
	e.Stream, e.Line = s.name, s.line
	return e
}

// wrap 给字段解码错误补上流、行号、组码、记录类型
func (s *Scanner) wrap(err error, code int, entity string) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Stream == "" {
			e.Stream = s.name
		}
		if e.Line == 0 {
			e.Line = s.line
		}
		if e.Entity == "" {
			e.Entity = entity
		}
		if e.Code < 0 {
			e.Code = code
		}
		return e
	}
	e = s.fail(KindOf(err), err)
	e.Code, e.Entity = code, entity
	return e
}
