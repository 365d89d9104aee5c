package core

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DiagnosticKind 非致命问题的种类
type DiagnosticKind int

const (
	// Unrecognized 当前记录的字段表不认识该组码，已跳过
	Unrecognized DiagnosticKind = iota + 1
	// BadSubclassMarker 组码 100 的子类标记不在期望集合中
	BadSubclassMarker
	// OutOfRange 宽松模式下枚举/标志位越界，仅告警
	OutOfRange
)

func (k DiagnosticKind) String() string {
	switch k {
	case Unrecognized:
		return "unrecognized group code"
	case BadSubclassMarker:
		return "bad subclass marker"
	case OutOfRange:
		return "value out of range"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic 一条非致命诊断信息
type Diagnostic struct {
	Kind    DiagnosticKind
	Stream  string
	Line    int
	Entity  string
	Tag     Tag
	Message string
}

func (d Diagnostic) String() string {
	msg := fmt.Sprintf("%s:%d: %s in %s: %s", d.Stream, d.Line, d.Kind, d.Entity, d.Tag)
	if d.Message != "" {
		msg += " (" + d.Message + ")"
	}
	return msg
}

// Sink 接收诊断信息
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc 函数适配 Sink
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard 丢弃所有诊断
var Discard Sink = SinkFunc(func(Diagnostic) {})

// LogSink 通过 logrus 输出诊断。
// 未识别组码在真实文件中很常见（XDATA 等），只记 Debug。
type LogSink struct {
	Logger logrus.FieldLogger
}

// NewLogSink 使用 logrus 标准 logger
func NewLogSink() *LogSink {
	return &LogSink{Logger: logrus.StandardLogger()}
}

func (s *LogSink) Report(d Diagnostic) {
	logger := s.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	entry := logger.WithFields(logrus.Fields{
		"stream": d.Stream,
		"line":   d.Line,
		"entity": d.Entity,
		"code":   d.Tag.Code,
		"value":  d.Tag.Value,
	})
	switch d.Kind {
	case Unrecognized:
		entry.Debug(d.Kind.String())
	default:
		if d.Message != "" {
			entry = entry.WithField("detail", d.Message)
		}
		entry.Warn(d.Kind.String())
	}
}

// Collector 收集诊断，便于批处理和测试
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Count 统计某类诊断数量
func (c *Collector) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range c.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
