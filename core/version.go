package core

import (
	"fmt"
	"strings"
)

// Version AutoCAD 版本序号，可比较大小
type Version int

const (
	VersionUnknown Version = iota
	R10
	R11
	R12
	R13
	R14
	R2000
	R2004
	R2007
	R2010
)

// DefaultVersion 未指定 $ACADVER 时使用的版本
const DefaultVersion = R12

var versions = []struct {
	version Version
	name    string
	acadver string
}{
	{R10, "R10", "AC1006"},
	{R11, "R11", "AC1009"},
	{R12, "R12", "AC1009"},
	{R13, "R13", "AC1012"},
	{R14, "R14", "AC1014"},
	{R2000, "R2000", "AC1015"},
	{R2004, "R2004", "AC1018"},
	{R2007, "R2007", "AC1021"},
	{R2010, "R2010", "AC1024"},
}

// Versions 返回全部已知版本，从低到高
func Versions() []Version {
	list := make([]Version, 0, len(versions))
	for _, v := range versions {
		list = append(list, v.version)
	}
	return list
}

func (v Version) String() string {
	for _, item := range versions {
		if item.version == v {
			return item.name
		}
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// ACADVER 返回 HEADER 中 $ACADVER 的取值
func (v Version) ACADVER() string {
	for _, item := range versions {
		if item.version == v {
			return item.acadver
		}
	}
	return ""
}

// UTF8 R2007 起 DXF 文本统一为 UTF-8，不再受 $DWGCODEPAGE 影响
func (v Version) UTF8() bool {
	return v >= R2007
}

// ParseVersion 解析 "R2000" 或 "AC1015" 形式的版本号。
// AC1009 同时对应 R11/R12，按 R12 处理：按 R11 写出的文件读回时版本为 R12，
// 只是少了 R12 才有的字段（ATTRIB 74），读取时取默认值。
func ParseVersion(s string) (Version, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i := len(versions) - 1; i >= 0; i-- {
		if versions[i].name == s || versions[i].acadver == s {
			return versions[i].version, nil
		}
	}
	return VersionUnknown, fmt.Errorf("unknown DXF version %q", s)
}

// VersionRange 版本可见区间，零值边界表示不限
type VersionRange struct {
	Min Version
	Max Version
}

// AnyVersion 所有版本可见
func AnyVersion() VersionRange { return VersionRange{} }

// Since v 及以后
func Since(v Version) VersionRange { return VersionRange{Min: v} }

// Until v 及以前
func Until(v Version) VersionRange { return VersionRange{Max: v} }

// Only 仅 v
func Only(v Version) VersionRange { return VersionRange{Min: v, Max: v} }

// Between 闭区间 [min, max]
func Between(min, max Version) VersionRange { return VersionRange{Min: min, Max: max} }

// Contains 判断版本是否落在区间内
func (r VersionRange) Contains(v Version) bool {
	if r.Min != VersionUnknown && v < r.Min {
		return false
	}
	if r.Max != VersionUnknown && v > r.Max {
		return false
	}
	return true
}

func (r VersionRange) String() string {
	switch {
	case r.Min == VersionUnknown && r.Max == VersionUnknown:
		return "any"
	case r.Max == VersionUnknown:
		return ">=" + r.Min.String()
	case r.Min == VersionUnknown:
		return "<=" + r.Max.String()
	case r.Min == r.Max:
		return "==" + r.Min.String()
	}
	return r.Min.String() + ".." + r.Max.String()
}
