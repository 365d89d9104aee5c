package core

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// $DWGCODEPAGE 取值到编码的映射，R2007 之前的文件按此解码字符串
var codePages = map[string]encoding.Encoding{
	"ANSI_874":  charmap.Windows874,
	"ANSI_932":  japanese.ShiftJIS,
	"ANSI_936":  simplifiedchinese.GBK,
	"ANSI_949":  korean.EUCKR,
	"ANSI_950":  traditionalchinese.Big5,
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1253": charmap.Windows1253,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1255": charmap.Windows1255,
	"ANSI_1256": charmap.Windows1256,
	"ANSI_1257": charmap.Windows1257,
	"ANSI_1258": charmap.Windows1258,
}

// CodePage 查找代码页对应的编码。
// 空串、"UTF-8"、"UTF8" 返回 nil，表示不转换。
func CodePage(name string) (encoding.Encoding, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	switch name {
	case "", "UTF-8", "UTF8":
		return nil, nil
	}
	if enc, ok := codePages[name]; ok {
		return enc, nil
	}
	return nil, fmt.Errorf("unsupported code page %q", name)
}
