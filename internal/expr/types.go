package expr

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Type is the result type an expression is coerced to.
type Type int

const (
	// Any leaves the value as it is.
	Any Type = iota
	Boolean
	String
	Number
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case String:
		return "string"
	case Number:
		return "number"
	default:
		return "any"
	}
}

// numberPattern is the only string shape that converts to a number.
var numberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

var (
	nullAny    = cty.NullVal(cty.DynamicPseudoType)
	nullBool   = cty.NullVal(cty.Bool)
	nullString = cty.NullVal(cty.String)
	nullNumber = cty.NullVal(cty.Number)
)

// Coerce converts v to t. Null stays null (typed as t). A value that cannot be
// converted yields an error wrapping ErrType.
func Coerce(v cty.Value, t Type) (cty.Value, error) {
	v = normalize(v)
	switch t {
	case Boolean:
		return toBool(v)
	case String:
		return toString(v)
	case Number:
		return toNumber(v)
	default:
		return v, nil
	}
}

// normalize maps unknown and non-primitive values to null.
func normalize(v cty.Value) cty.Value {
	if !v.IsKnown() || v.IsNull() {
		return nullAny
	}
	switch v.Type() {
	case cty.Bool, cty.String, cty.Number:
		return v
	default:
		return nullAny
	}
}

func toBool(v cty.Value) (cty.Value, error) {
	if v.IsNull() {
		return nullBool, nil
	}
	switch v.Type() {
	case cty.Bool:
		return v, nil
	case cty.String:
		switch v.AsString() {
		case "true", "1":
			return cty.True, nil
		case "false", "0":
			return cty.False, nil
		}
	case cty.Number:
		switch {
		case v.Equals(cty.NumberIntVal(1)).True():
			return cty.True, nil
		case v.Equals(cty.Zero).True():
			return cty.False, nil
		}
	}
	return nullBool, typeError(v, Boolean)
}

func toString(v cty.Value) (cty.Value, error) {
	if v.IsNull() {
		return nullString, nil
	}
	if v.Type() == cty.Number {
		f, err := toFloat(v)
		if err != nil {
			return nullString, err
		}
		return cty.StringVal(formatFloat(f)), nil
	}
	out, err := convert.Convert(v, cty.String)
	if err != nil {
		return nullString, typeError(v, String)
	}
	return out, nil
}

func toNumber(v cty.Value) (cty.Value, error) {
	if v.IsNull() {
		return nullNumber, nil
	}
	switch v.Type() {
	case cty.Number:
		return v, nil
	case cty.Bool:
		if v.True() {
			return cty.NumberIntVal(1), nil
		}
		return cty.Zero, nil
	case cty.String:
		s := v.AsString()
		if s == "" {
			return nullNumber, nil
		}
		if numberPattern.MatchString(s) {
			n, err := cty.ParseNumberVal(s)
			if err == nil {
				return n, nil
			}
		}
	}
	return nullNumber, typeError(v, Number)
}

// toFloat extracts a float64 from a known, non-null number.
func toFloat(v cty.Value) (float64, error) {
	var f float64
	if err := gocty.FromCtyValue(v, &f); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrType, err)
	}
	return f, nil
}

// fromFloat builds a number value; NaN is rejected since it has no JSON form.
func fromFloat(f float64) (cty.Value, error) {
	if math.IsNaN(f) {
		return nullNumber, fmt.Errorf("%w: result is not a number", ErrInvalidArgument)
	}
	return gocty.ToCtyValue(f, cty.Number)
}

// formatFloat renders numbers in their shortest decimal form without
// trailing zeros or exponent.
func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func typeError(v cty.Value, t Type) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrType, t, FormatValue(v))
}
