package core

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteValue(0, "LINE"))
	require.NoError(t, w.WriteValue(10, formatFloat(1)))
	require.NoError(t, w.WriteValue(100, "AcDbLine"))
	require.NoError(t, w.WriteValue(1001, "APP"))
	require.NoError(t, w.Flush())

	assert.Equal(t, "  0\nLINE\n 10\n1.000000\n100\nAcDbLine\n1001\nAPP\n", buf.String())
	assert.Equal(t, 8, w.Line())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("no space left") }

func TestWriter_Failure(t *testing.T) {
	w := NewWriter(failingWriter{}, WithOutputName("out.dxf"))
	_ = w.WriteValue(0, "LINE")
	err := w.Flush()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
	assert.Contains(t, err.Error(), "out.dxf")

	// 错误是粘滞的
	assert.Error(t, w.WriteValue(8, "0"))
}

func TestWriter_Encoding(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithOutputEncoding(simplifiedchinese.GBK))
	require.NoError(t, w.WriteValue(1, "门窗"))
	require.NoError(t, w.Flush())

	scanner := NewScanner(&buf, WithEncoding(simplifiedchinese.GBK))
	require.True(t, scanner.Next())
	assert.Equal(t, "门窗", scanner.LastTag.Value)
}

func TestCodePage(t *testing.T) {
	enc, err := CodePage("ansi_1252")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	enc, err = CodePage("")
	require.NoError(t, err)
	assert.Nil(t, enc)

	_, err = CodePage("EBCDIC")
	assert.Error(t, err)
}
