package expr

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/zclconf/go-cty/cty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// function describes one entry of the fixed function table.
type function struct {
	// params are the declared parameter types. When the function is
	// variadic the last type repeats.
	params []Type
	// min and max bound the argument count; max < 0 means unbounded.
	min, max int
	returns  Type
	// eval receives the unevaluated arguments, so each function decides
	// what to evaluate and in which order.
	eval func(ev *evaluator, args []Expr) (cty.Value, error)
}

func (f *function) param(i int) Type {
	if len(f.params) == 0 {
		return Any
	}
	if i < len(f.params) {
		return f.params[i]
	}
	return f.params[len(f.params)-1]
}

func (f *function) arity() string {
	switch {
	case f.max < 0:
		return fmt.Sprintf("at least %d", f.min)
	case f.min == f.max:
		return strconv.Itoa(f.min)
	default:
		return fmt.Sprintf("%d to %d", f.min, f.max)
	}
}

var functions map[string]*function

func init() {
	functions = map[string]*function{
		"equals":    {params: []Type{Any, Any}, min: 2, max: 2, returns: Boolean, eval: fnEquals(false)},
		"notEquals": {params: []Type{Any, Any}, min: 2, max: 2, returns: Boolean, eval: fnEquals(true)},
		"not":       {params: []Type{Boolean}, min: 1, max: 1, returns: Boolean, eval: fnNot},
		"and":       {params: []Type{Boolean}, min: 1, max: -1, returns: Boolean, eval: fnAndOr(false)},
		"or":        {params: []Type{Boolean}, min: 1, max: -1, returns: Boolean, eval: fnAndOr(true)},
		"if":        {params: []Type{Boolean, Any, String, Any}, min: 2, max: 4, returns: Any, eval: fnIf},

		"greaterThan":   {params: []Type{Number, Number}, min: 2, max: 2, returns: Boolean, eval: fnCompare(func(a, b float64) bool { return a > b })},
		"greaterThanEq": {params: []Type{Number, Number}, min: 2, max: 2, returns: Boolean, eval: fnCompare(func(a, b float64) bool { return a >= b })},
		"lessThan":      {params: []Type{Number, Number}, min: 2, max: 2, returns: Boolean, eval: fnCompare(func(a, b float64) bool { return a < b })},
		"lessThanEq":    {params: []Type{Number, Number}, min: 2, max: 2, returns: Boolean, eval: fnCompare(func(a, b float64) bool { return a <= b })},

		"concat":              {params: []Type{String}, min: 0, max: -1, returns: String, eval: fnConcat},
		"dataModel":           {params: []Type{String, String}, min: 1, max: 2, returns: Any, eval: fnDataModel},
		"component":           {params: []Type{String, Number}, min: 1, max: -1, returns: Any, eval: fnComponent},
		"instanceContext":     {params: []Type{String}, min: 1, max: 1, returns: String, eval: fnInstanceContext},
		"applicationSettings": {params: []Type{String}, min: 1, max: 1, returns: Any, eval: fnSettings},
		"frontendSettings":    {params: []Type{String}, min: 1, max: 1, returns: Any, eval: fnSettings},
		"text":                {params: []Type{String}, min: 1, max: 1, returns: String, eval: fnText},
		"language":            {min: 0, max: 0, returns: String, eval: fnLanguage},

		"contains":      {params: []Type{String, String}, min: 2, max: 2, returns: Boolean, eval: fnStringTest(false, strings.Contains)},
		"notContains":   {params: []Type{String, String}, min: 2, max: 2, returns: Boolean, eval: fnStringTest(true, func(s, sub string) bool { return !strings.Contains(s, sub) })},
		"startsWith":    {params: []Type{String, String}, min: 2, max: 2, returns: Boolean, eval: fnStringTest(false, strings.HasPrefix)},
		"endsWith":      {params: []Type{String, String}, min: 2, max: 2, returns: Boolean, eval: fnStringTest(false, strings.HasSuffix)},
		"commaContains": {params: []Type{String, String}, min: 2, max: 2, returns: Boolean, eval: fnStringTest(false, commaContains)},
		"stringLength":  {params: []Type{String}, min: 1, max: 1, returns: Number, eval: fnStringLength},
		"lowerCase":     {params: []Type{String}, min: 1, max: 1, returns: String, eval: fnCase(func() cases.Caser { return cases.Lower(language.Und) })},
		"upperCase":     {params: []Type{String}, min: 1, max: 1, returns: String, eval: fnCase(func() cases.Caser { return cases.Upper(language.Und) })},

		"round":    {params: []Type{Number, Number}, min: 1, max: 2, returns: Number, eval: fnRound},
		"plus":     {params: []Type{Number, Number}, min: 2, max: 2, returns: Number, eval: fnArithmetic(func(a, b float64) float64 { return a + b })},
		"minus":    {params: []Type{Number, Number}, min: 2, max: 2, returns: Number, eval: fnArithmetic(func(a, b float64) float64 { return a - b })},
		"multiply": {params: []Type{Number, Number}, min: 2, max: 2, returns: Number, eval: fnArithmetic(func(a, b float64) float64 { return a * b })},
		"divide":   {params: []Type{Number, Number}, min: 2, max: 2, returns: Number, eval: fnDivide},
		"argv":     {params: []Type{Number}, min: 1, max: 1, returns: Any, eval: fnArgv},
	}
}

// FunctionNames returns the sorted names of all known functions.
func FunctionNames() []string {
	return sortedKeys(functions)
}

func fnEquals(negate bool) func(*evaluator, []Expr) (cty.Value, error) {
	return func(ev *evaluator, args []Expr) (cty.Value, error) {
		a, err := ev.arg(args, 0, String)
		if err != nil {
			return nullBool, err
		}
		b, err := ev.arg(args, 1, String)
		if err != nil {
			return nullBool, err
		}
		var equal bool
		switch {
		case a.IsNull() || b.IsNull():
			equal = a.IsNull() && b.IsNull()
		default:
			equal = a.AsString() == b.AsString()
		}
		return cty.BoolVal(equal != negate), nil
	}
}

func fnNot(ev *evaluator, args []Expr) (cty.Value, error) {
	b, err := ev.truthy(args, 0)
	if err != nil {
		return nullBool, err
	}
	return cty.BoolVal(!b), nil
}

// fnAndOr stops at the first argument equal to stopAt.
func fnAndOr(stopAt bool) func(*evaluator, []Expr) (cty.Value, error) {
	return func(ev *evaluator, args []Expr) (cty.Value, error) {
		for i := range args {
			b, err := ev.truthy(args, i)
			if err != nil {
				return nullBool, err
			}
			if b == stopAt {
				return cty.BoolVal(stopAt), nil
			}
		}
		return cty.BoolVal(!stopAt), nil
	}
}

func fnIf(ev *evaluator, args []Expr) (cty.Value, error) {
	if len(args) == 3 {
		return nullAny, fmt.Errorf("%w: if expects 2 or 4 arguments, got 3", ErrArity)
	}
	if len(args) == 4 && !isElse(args[2]) {
		return nullAny, fmt.Errorf("%w: third argument of if must be \"else\"", ErrInvalidArgument)
	}

	cond, err := ev.truthy(args, 0)
	if err != nil {
		return nullAny, err
	}
	switch {
	case cond:
		return ev.arg(args, 1, Any)
	case len(args) == 4:
		return ev.arg(args, 3, Any)
	default:
		return nullAny, nil
	}
}

func isElse(e Expr) bool {
	l, ok := e.(Literal)
	return ok && l.Value.Type() == cty.String && l.Value.AsString() == "else"
}

// fnCompare yields false when either side is null.
func fnCompare(cmp func(a, b float64) bool) func(*evaluator, []Expr) (cty.Value, error) {
	return func(ev *evaluator, args []Expr) (cty.Value, error) {
		a, okA, err := ev.numberArg(args, 0)
		if err != nil {
			return nullBool, err
		}
		b, okB, err := ev.numberArg(args, 1)
		if err != nil {
			return nullBool, err
		}
		if !okA || !okB {
			return cty.False, nil
		}
		return cty.BoolVal(cmp(a, b)), nil
	}
}

func fnConcat(ev *evaluator, args []Expr) (cty.Value, error) {
	var sb strings.Builder
	for i := range args {
		s, _, err := ev.stringArg(args, i)
		if err != nil {
			return nullString, err
		}
		sb.WriteString(s)
	}
	return cty.StringVal(sb.String()), nil
}

func fnDataModel(ev *evaluator, args []Expr) (cty.Value, error) {
	field, ok, err := ev.stringArg(args, 0)
	if err != nil {
		return nullAny, err
	}
	if !ok {
		return nullAny, fmt.Errorf("%w: data model path is null", ErrInvalidArgument)
	}
	var dataType string
	if len(args) > 1 {
		if dataType, _, err = ev.stringArg(args, 1); err != nil {
			return nullAny, err
		}
	}
	return ev.env.lookupData(dataType, field)
}

// fnComponent reads another component in the current row context. Arguments
// after the id pick its rows explicitly, outermost group first.
func fnComponent(ev *evaluator, args []Expr) (cty.Value, error) {
	id, ok, err := ev.stringArg(args, 0)
	if err != nil {
		return nullAny, err
	}
	if !ok {
		return nullAny, fmt.Errorf("%w: component id is null", ErrInvalidArgument)
	}

	var rows []int
	for i := 1; i < len(args); i++ {
		f, ok, err := ev.numberArg(args, i)
		if err != nil {
			return nullAny, err
		}
		if !ok {
			return nullAny, fmt.Errorf("%w: row index is null", ErrInvalidArgument)
		}
		if !isRowIndex(f) {
			return nullAny, fmt.Errorf("%w: %s is not a row index", ErrInvalidArgument, formatFloat(f))
		}
		rows = append(rows, int(f))
	}

	if ev.env.Components == nil {
		return nullAny, fmt.Errorf("%w: component %q cannot be resolved here", ErrUnknownReference, id)
	}
	v, err := ev.env.Components.ComponentValue(id, ev.env.Location, rows)
	if err != nil {
		return nullAny, fmt.Errorf("component %q: %w", id, err)
	}
	return normalize(v), nil
}

func isRowIndex(f float64) bool {
	return f >= 0 && f == math.Trunc(f) && f <= math.MaxInt32
}

func fnInstanceContext(ev *evaluator, args []Expr) (cty.Value, error) {
	key, ok, err := ev.stringArg(args, 0)
	if err != nil || !ok {
		return nullString, err
	}
	return ev.env.Instance.value(key)
}

func fnSettings(ev *evaluator, args []Expr) (cty.Value, error) {
	key, ok, err := ev.stringArg(args, 0)
	if err != nil || !ok {
		return nullAny, err
	}
	v, found := ev.env.Settings[key]
	if !found {
		return nullAny, nil
	}
	return cty.StringVal(v), nil
}

func fnText(ev *evaluator, args []Expr) (cty.Value, error) {
	key, ok, err := ev.stringArg(args, 0)
	if err != nil || !ok {
		return nullString, err
	}
	if ev.env.Texts != nil {
		if text, found := ev.env.Texts(key); found {
			return cty.StringVal(text), nil
		}
	}
	return cty.StringVal(key), nil
}

func fnLanguage(ev *evaluator, _ []Expr) (cty.Value, error) {
	return cty.StringVal(ev.env.language()), nil
}

// fnStringTest applies test to two string arguments. A null operand yields
// onNull without calling test.
func fnStringTest(onNull bool, test func(s, other string) bool) func(*evaluator, []Expr) (cty.Value, error) {
	return func(ev *evaluator, args []Expr) (cty.Value, error) {
		a, okA, err := ev.stringArg(args, 0)
		if err != nil {
			return nullBool, err
		}
		b, okB, err := ev.stringArg(args, 1)
		if err != nil {
			return nullBool, err
		}
		if !okA || !okB {
			return cty.BoolVal(onNull), nil
		}
		return cty.BoolVal(test(a, b)), nil
	}
}

func commaContains(list, s string) bool {
	for _, item := range strings.Split(list, ",") {
		if strings.TrimSpace(item) == s {
			return true
		}
	}
	return false
}

// fnStringLength counts UTF-16 code units.
func fnStringLength(ev *evaluator, args []Expr) (cty.Value, error) {
	s, _, err := ev.stringArg(args, 0)
	if err != nil {
		return nullNumber, err
	}
	return cty.NumberIntVal(int64(len(utf16.Encode([]rune(s))))), nil
}

// fnCase builds a fresh Caser per call since Casers keep state.
func fnCase(newCaser func() cases.Caser) func(*evaluator, []Expr) (cty.Value, error) {
	return func(ev *evaluator, args []Expr) (cty.Value, error) {
		s, ok, err := ev.stringArg(args, 0)
		if err != nil || !ok {
			return nullString, err
		}
		return cty.StringVal(newCaser().String(s)), nil
	}
}

func fnRound(ev *evaluator, args []Expr) (cty.Value, error) {
	n, _, err := ev.numberArg(args, 0)
	if err != nil {
		return nullNumber, err
	}
	places := 0.0
	if len(args) > 1 {
		if places, _, err = ev.numberArg(args, 1); err != nil {
			return nullNumber, err
		}
	}
	if places < 0 || places != math.Trunc(places) {
		return nullNumber, fmt.Errorf("%w: decimal places must be a non-negative integer, got %s", ErrInvalidArgument, formatFloat(places))
	}
	return fromFloat(roundHalfAwayFromZero(n, int(places)))
}

// roundHalfAwayFromZero rounds on the shortest decimal representation of f,
// so 1.005 rounds to 1.01 the way a decimal type would.
func roundHalfAwayFromZero(f float64, places int) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return f
	}
	digits := strconv.FormatFloat(math.Abs(f), 'f', -1, 64)
	whole, frac, _ := strings.Cut(digits, ".")
	if len(frac) <= places {
		return f
	}

	n, _ := new(big.Int).SetString(whole+frac[:places], 10)
	if frac[places] >= '5' {
		n.Add(n, big.NewInt(1))
	}
	s := n.String()
	if places > 0 {
		if len(s) <= places {
			s = strings.Repeat("0", places-len(s)+1) + s
		}
		s = s[:len(s)-places] + "." + s[len(s)-places:]
	}

	out, _ := strconv.ParseFloat(s, 64)
	if f < 0 {
		out = -out
	}
	return out
}

// fnArithmetic propagates null: a missing operand gives a missing result.
func fnArithmetic(op func(a, b float64) float64) func(*evaluator, []Expr) (cty.Value, error) {
	return func(ev *evaluator, args []Expr) (cty.Value, error) {
		a, okA, err := ev.numberArg(args, 0)
		if err != nil {
			return nullNumber, err
		}
		b, okB, err := ev.numberArg(args, 1)
		if err != nil {
			return nullNumber, err
		}
		if !okA || !okB {
			return nullNumber, nil
		}
		return fromFloat(op(a, b))
	}
}

func fnDivide(ev *evaluator, args []Expr) (cty.Value, error) {
	a, okA, err := ev.numberArg(args, 0)
	if err != nil {
		return nullNumber, err
	}
	b, okB, err := ev.numberArg(args, 1)
	if err != nil {
		return nullNumber, err
	}
	if !okA || !okB {
		return nullNumber, nil
	}
	if b == 0 {
		return nullNumber, fmt.Errorf("%w: division by zero", ErrInvalidArgument)
	}
	return fromFloat(a / b)
}

func fnArgv(ev *evaluator, args []Expr) (cty.Value, error) {
	f, ok, err := ev.numberArg(args, 0)
	if err != nil {
		return nullAny, err
	}
	if !ok || f != math.Trunc(f) || f < 0 || f >= float64(len(ev.env.Args)) {
		return nullAny, fmt.Errorf("%w: no positional argument %s", ErrInvalidArgument, formatFloat(f))
	}
	return ev.env.Args[int(f)], nil
}
