package formdata

import (
	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/zclconf/go-cty/cty"
)

var null = cty.NullVal(cty.DynamicPseudoType)

// walk follows path through v, stopping with null at the first step that
// cannot be taken.
func walk(v cty.Value, path datamodel.Path) cty.Value {
	for _, segment := range path {
		v = attr(v, segment.Name)
		if segment.HasIndex() {
			v = element(v, segment.Index)
		}
		if v.IsNull() {
			return null
		}
	}
	return v
}

func attr(v cty.Value, name string) cty.Value {
	if v.IsNull() || !v.IsKnown() {
		return null
	}
	ty := v.Type()
	switch {
	case ty.IsObjectType():
		if !ty.HasAttribute(name) {
			return null
		}
		return v.GetAttr(name)
	case ty.IsMapType():
		key := cty.StringVal(name)
		if !v.HasIndex(key).True() {
			return null
		}
		return v.Index(key)
	default:
		return null
	}
}

func element(v cty.Value, index int) cty.Value {
	if index < 0 || rowCount(v) <= index {
		return null
	}
	return v.Index(cty.NumberIntVal(int64(index)))
}
