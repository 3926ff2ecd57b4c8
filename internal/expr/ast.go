package expr

import (
	"encoding/json"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Expr is a node of a parsed expression. Implementations are immutable.
type Expr interface {
	// String returns the canonical JSON form of the expression.
	String() string
	isExpr()
}

// Literal is a constant. Its Value is always null, bool, number or string.
type Literal struct {
	Value cty.Value
}

// Call applies a function to argument expressions.
type Call struct {
	Func string
	Args []Expr
}

func (Literal) isExpr() {}
func (*Call) isExpr()   {}

func (l Literal) String() string {
	return FormatValue(l.Value)
}

func (c *Call) String() string {
	var sb strings.Builder
	name, _ := json.Marshal(c.Func)
	sb.WriteByte('[')
	sb.Write(name)
	for _, arg := range c.Args {
		sb.WriteByte(',')
		sb.WriteString(arg.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalJSON writes the canonical form, so expressions can be embedded in
// other JSON documents.
func (l Literal) MarshalJSON() ([]byte, error) {
	return []byte(l.String()), nil
}

// MarshalJSON writes the canonical form.
func (c *Call) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// Const wraps a value as a literal expression. Non-primitive values become null.
func Const(v cty.Value) Expr {
	return Literal{Value: normalize(v)}
}
