package core

import (
	"errors"
	"fmt"
	"strings"
)

// 错误分类，调用方可用 errors.Is 区分
var (
	// ErrIO 底层读写失败，当前记录无法继续
	ErrIO = errors.New("dxf: i/o failure")

	// ErrMalformed 值无法转换为字段类型，或枚举/标志位越界
	ErrMalformed = errors.New("dxf: malformed value")

	// ErrDegenerateGeometry 几何数据退化，例如直线起点终点重合
	ErrDegenerateGeometry = errors.New("dxf: degenerate geometry")
)

// ErrorKind 错误种类
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindIO
	KindMalformed
	KindDegenerateGeometry
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io failure"
	case KindMalformed:
		return "malformed"
	case KindDegenerateGeometry:
		return "degenerate geometry"
	}
	return "no error"
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindIO:
		return ErrIO
	case KindMalformed:
		return ErrMalformed
	case KindDegenerateGeometry:
		return ErrDegenerateGeometry
	}
	return nil
}

// Error 带上下文的协议错误
type Error struct {
	Kind   ErrorKind
	Stream string // 流名称（文件名）
	Line   int    // 出错时的行号，0 表示未知
	Code   int    // 出错的组码，-1 表示无
	Entity string // 正在处理的记录类型
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Stream != "" {
		b.WriteString(e.Stream)
		b.WriteByte(':')
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:", e.Line)
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(e.Kind.String())
	if e.Entity != "" {
		b.WriteString(" in ")
		b.WriteString(e.Entity)
	}
	if e.Code >= 0 {
		fmt.Fprintf(&b, " (group code %d)", e.Code)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 让 errors.Is(err, ErrMalformed) 等按种类匹配
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf 返回错误种类，非本包错误按哨兵推断
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrDegenerateGeometry):
		return KindDegenerateGeometry
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	}
	return KindIO
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Code: -1, Err: err}
}
