package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/zooyer/dxfio"
	"github.com/zooyer/dxfio/entities"
	"github.com/zooyer/dxfio/tables"
)

// precision 标注样式定义的小数位数，找不到样式时使用 DIMDEC 默认值
func precision(doc *dxfio.Document, dim *entities.Dimension) (int, *tables.DimStyle) {
	if style, ok := doc.DimStyles[strings.ToUpper(dim.StyleName)]; ok {
		return style.Precision, style
	}
	return tables.DefaultPrecision, nil
}

// DimValue 标注的数值
func DimValue(doc *dxfio.Document, dim *entities.Dimension) float64 {
	// 1. 如果有手动文字覆盖，直接按文字提取数字
	if dim.Text != "" && !strings.Contains(dim.Text, "<>") {
		return dim.GetCleanVal()
	}

	// 2. 根据样式精度进行四舍五入
	prec, _ := precision(doc, dim)
	p := math.Pow(10, float64(prec))

	return math.Round(dim.ActualMeasurement*p) / p
}

// DimText 标注显示的文字：<> 替换为测量值，并按 DIMPOST 加上前后缀。
// 覆盖文字为单个空格时不显示。
func DimText(doc *dxfio.Document, dim *entities.Dimension) string {
	prec, style := precision(doc, dim)
	text := strconv.FormatFloat(DimValue(doc, dim), 'f', prec, 64)
	if style != nil && style.Suffix != "" {
		if strings.Contains(style.Suffix, "<>") {
			text = strings.Replace(style.Suffix, "<>", text, 1)
		} else {
			text += style.Suffix
		}
	}

	switch dim.Text {
	case "":
		return text
	case " ":
		return ""
	}
	return strings.Replace(dim.Text, "<>", text, 1)
}
