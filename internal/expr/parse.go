package expr

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseJSON decodes and validates an expression. Numbers keep their exact
// decimal digits.
func ParseJSON(b []byte) (Expr, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ValidationError{Issues: []Issue{{Message: fmt.Sprintf("malformed JSON: %v", err)}}}
	}
	if dec.More() {
		return nil, &ValidationError{Issues: []Issue{{Message: "unexpected data after expression"}}}
	}
	return Parse(raw)
}

// MustParseJSON is like ParseJSON but panics on error. Intended for tests and
// package-level fixtures.
func MustParseJSON(s string) Expr {
	e, err := ParseJSON([]byte(s))
	if err != nil {
		panic(err)
	}
	return e
}

// Parse validates a decoded JSON value (nil, bool, string, number, []any)
// and builds its AST. Scalars are constant expressions. All problems are
// collected into one *ValidationError.
func Parse(raw any) (Expr, error) {
	p := &parser{}
	e := p.parse(raw, nil)
	if len(p.issues) > 0 {
		return nil, &ValidationError{Issues: p.issues}
	}
	return e, nil
}

// IsValid reports whether raw is a valid expression.
func IsValid(raw any) bool {
	_, err := Parse(raw)
	return err == nil
}

type parser struct {
	issues []Issue
}

func (p *parser) addf(path []int, format string, args ...any) {
	p.issues = append(p.issues, Issue{Path: formatPath(path), Message: fmt.Sprintf(format, args...)})
}

func (p *parser) parse(raw any, path []int) Expr {
	switch x := raw.(type) {
	case []any:
		return p.parseCall(x, path)
	case map[string]any:
		p.addf(path, "an object is not a valid expression")
		return Literal{Value: nullAny}
	case Expr:
		return x
	default:
		v, err := FromGo(x)
		if err != nil {
			p.addf(path, "%v", err)
			return Literal{Value: nullAny}
		}
		return Literal{Value: v}
	}
}

func (p *parser) parseCall(items []any, path []int) Expr {
	if len(items) == 0 {
		p.addf(path, "an empty array is not a valid expression")
		return Literal{Value: nullAny}
	}
	name, ok := items[0].(string)
	if !ok {
		p.addf(childPath(path, 0), "function name must be a string")
		return Literal{Value: nullAny}
	}

	call := &Call{Func: name, Args: make([]Expr, 0, len(items)-1)}
	for i, item := range items[1:] {
		call.Args = append(call.Args, p.parse(item, childPath(path, i+1)))
	}

	fn, known := functions[name]
	if !known {
		p.addf(childPath(path, 0), "unknown function %q", name)
		return call
	}

	n := len(call.Args)
	switch {
	case name == "if" && (n == 2 || n == 4):
	case name == "if":
		p.addf(path, "if expects 2 or 4 arguments, got %d", n)
	case n < fn.min || (fn.max >= 0 && n > fn.max):
		p.addf(path, "%s expects %s arguments, got %d", name, fn.arity(), n)
	}

	for i, arg := range call.Args {
		if name == "if" && i == 2 {
			if !isElse(arg) {
				p.addf(childPath(path, i+1), `expected "else"`)
			}
			continue
		}
		p.checkLiteral(arg, fn.param(i), childPath(path, i+1))
		if name == "component" && i > 0 {
			p.checkRowIndex(arg, childPath(path, i+1))
		}
	}
	return call
}

// checkRowIndex rejects constant row indices that are negative, fractional
// or null.
func (p *parser) checkRowIndex(arg Expr, path []int) {
	lit, ok := arg.(Literal)
	if !ok {
		return
	}
	v, err := Coerce(lit.Value, Number)
	if err != nil {
		return
	}
	if v.IsNull() {
		p.addf(path, "row index cannot be null")
		return
	}
	if f, err := toFloat(v); err == nil && !isRowIndex(f) {
		p.addf(path, "%s is not a row index", FormatValue(lit.Value))
	}
}

// checkLiteral rejects constants that can never convert to the parameter
// type. Nested calls are only checked when evaluated.
func (p *parser) checkLiteral(arg Expr, want Type, path []int) {
	lit, ok := arg.(Literal)
	if !ok {
		return
	}
	if _, err := Coerce(lit.Value, want); err != nil {
		p.addf(path, "%s cannot be used as %s", FormatValue(lit.Value), want)
	}
}

func childPath(path []int, i int) []int {
	out := make([]int, len(path), len(path)+1)
	copy(out, path)
	return append(out, i)
}
