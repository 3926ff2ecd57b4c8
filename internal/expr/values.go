package expr

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// FormatValue renders a result as JSON. Non-primitive values render as null.
func FormatValue(v cty.Value) string {
	v = normalize(v)
	if v.IsNull() {
		return "null"
	}
	switch v.Type() {
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	case cty.Number:
		f, err := toFloat(v)
		if err != nil {
			return v.AsBigFloat().Text('f', -1)
		}
		return formatFloat(f)
	default:
		b, _ := json.Marshal(v.AsString())
		return string(b)
	}
}

// ToGo converts a result into nil, bool, float64 or string.
func ToGo(v cty.Value) any {
	v = normalize(v)
	if v.IsNull() {
		return nil
	}
	switch v.Type() {
	case cty.Bool:
		return v.True()
	case cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil
		}
		return f
	default:
		return v.AsString()
	}
}

// FromGo converts a Go scalar into a value. json.Number is accepted so that
// decoded JSON keeps its exact digits.
func FromGo(x any) (cty.Value, error) {
	switch x := x.(type) {
	case nil:
		return nullAny, nil
	case bool:
		return cty.BoolVal(x), nil
	case string:
		return cty.StringVal(x), nil
	case json.Number:
		v, err := cty.ParseNumberVal(x.String())
		if err != nil {
			return nullAny, fmt.Errorf("invalid number %q: %w", x, err)
		}
		return v, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return gocty.ToCtyValue(x, cty.Number)
	case cty.Value:
		return normalize(x), nil
	default:
		return nullAny, fmt.Errorf("unsupported value of type %T", x)
	}
}
