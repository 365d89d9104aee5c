package utils

import (
	"github.com/zooyer/dxfio/entities"
)

// Attributes 以属性标签为键返回 INSERT 的全部属性值，重复标签取第一个
func Attributes(ins *entities.Insert) map[string]string {
	var attrs = make(map[string]string)
	for _, a := range ins.Attributes {
		if _, ok := attrs[a.Tag]; !ok {
			attrs[a.Tag] = a.Text
		}
	}

	return attrs
}

func Attribute(ins *entities.Insert, tag string) (string, bool) {
	for _, a := range ins.Attributes {
		if a.Tag == tag {
			return a.Text, true
		}
	}
	return "", false
}

// SetAttribute 修改属性值；不存在时在插入点新建，写出时自动带上 66 和 SEQEND
func SetAttribute(ins *entities.Insert, tag, text string, height float64) *entities.Attrib {
	for _, a := range ins.Attributes {
		if a.Tag == tag {
			a.Text = text
			return a
		}
	}
	a := entities.NewAttrib(tag, text, ins.InsertionPoint, height)
	a.LayerName = ins.LayerName
	a.Rotation = ins.Rotation
	ins.Attributes = append(ins.Attributes, a)
	ins.AttribsFollow = 1
	return a
}
