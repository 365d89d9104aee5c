package core

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestScanner_Basic(t *testing.T) {
	// 模拟一个简单的 DXF 片段
	dxfData := "0\nSECTION\n2\nHEADER\n0\nENDSEC\n"
	r := strings.NewReader(dxfData)
	scanner := NewScanner(r)

	expected := []Tag{
		{0, "SECTION"},
		{2, "HEADER"},
		{0, "ENDSEC"},
	}

	for i, exp := range expected {
		if !scanner.Next() {
			t.Fatalf("第 %d 步读取失败: %v", i, scanner.Err())
		}
		if scanner.LastTag.Code != exp.Code || scanner.LastTag.Value != exp.Value {
			t.Errorf("第 %d 步数据不符: 期望 %+v, 得到 %+v", i, exp, scanner.LastTag)
		}
	}
	assert.False(t, scanner.Next())
	assert.NoError(t, scanner.Err())
	assert.Equal(t, 6, scanner.Line())
}

func TestScanner_KeepsLeadingSpaces(t *testing.T) {
	scanner := NewScanner(strings.NewReader("  1\r\n  hello \r\n"))
	require.True(t, scanner.Next())
	assert.Equal(t, Tag{Code: 1, Value: "  hello "}, scanner.LastTag)
}

func TestScanner_SkipsBlankCodeLines(t *testing.T) {
	scanner := NewScanner(strings.NewReader("\n\n  8\nWALLS\n"))
	require.True(t, scanner.Next())
	assert.Equal(t, Tag{Code: 8, Value: "WALLS"}, scanner.LastTag)
	assert.Equal(t, 4, scanner.Line())
}

func TestScanner_NoTrailingNewline(t *testing.T) {
	scanner := NewScanner(strings.NewReader("0\nEOF"))
	require.True(t, scanner.Next())
	assert.Equal(t, Tag{Code: 0, Value: "EOF"}, scanner.LastTag)
	assert.False(t, scanner.Next())
	assert.NoError(t, scanner.Err())
}

func TestScanner_BadCode(t *testing.T) {
	scanner := NewScanner(strings.NewReader("0\nLINE\nxx\n1\n"), WithName("bad.dxf"))
	require.True(t, scanner.Next())
	require.False(t, scanner.Next())

	err := scanner.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.Contains(t, err.Error(), "bad.dxf:3:")
}

func TestScanner_MissingValueLine(t *testing.T) {
	scanner := NewScanner(strings.NewReader("8\n"), WithName("cut.dxf"))
	require.False(t, scanner.Next())

	err := scanner.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestScanner_ReadFailure(t *testing.T) {
	scanner := NewScanner(failingReader{}, WithName("broken.dxf"))
	assert.False(t, scanner.Next())

	var e *Error
	require.True(t, errors.As(scanner.Err(), &e))
	assert.Equal(t, KindIO, e.Kind)
	assert.Equal(t, "broken.dxf", e.Stream)
	assert.False(t, scanner.Next(), "错误后不应继续读取")
}

func TestScanner_Skip(t *testing.T) {
	scanner := NewScanner(strings.NewReader("8\nA\n10\n1.0\n0\nLINE\n8\nB\n"))
	require.True(t, scanner.Next())
	require.True(t, scanner.Skip())
	assert.Equal(t, Tag{Code: 0, Value: "LINE"}, scanner.LastTag)

	// 已经在 0 标签上时不前进
	require.True(t, scanner.Skip())
	assert.Equal(t, "LINE", scanner.LastTag.Value)
}

func TestScanner_Encoding(t *testing.T) {
	// "Größe" in Windows-1252
	raw := "1\nGr\xf6\xdfe\n"
	scanner := NewScanner(strings.NewReader(raw), WithEncoding(charmap.Windows1252))
	require.True(t, scanner.Next())
	assert.Equal(t, "Größe", scanner.LastTag.Value)
}

func TestTag_StrictConversions(t *testing.T) {
	f, err := parseFloat(" 1.5 ")
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	_, err = parseFloat("1,5")
	assert.True(t, errors.Is(err, ErrMalformed))

	h, err := parseHex("1A")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1A), h)

	i, err := parseInt("   64")
	require.NoError(t, err)
	assert.Equal(t, 64, i)

	_, err = parseInt("x")
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestTag_Name(t *testing.T) {
	assert.Equal(t, "SEQEND", Tag{Code: 0, Value: " seqend "}.Name())
	assert.Equal(t, "$ACADVER", Tag{Code: 9, Value: "$AcadVer"}.Name())
}
