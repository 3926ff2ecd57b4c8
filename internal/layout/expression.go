// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package layout

import (
	"encoding/json"

	"github.com/specialistvlad/formtree/internal/expr"
)

// Expression is an expression-valued property together with its source.
type Expression struct {
	// Raw is the JSON as written in the layout.
	Raw json.RawMessage
	// Expr is the parsed form; nil when Err is set.
	Expr expr.Expr
	// Err holds the parse or validation error, if any.
	Err error
}

// NewExpression parses raw. A parse failure is kept in Err.
func NewExpression(raw json.RawMessage) *Expression {
	e := &Expression{Raw: append(json.RawMessage(nil), raw...)}
	e.Expr, e.Err = expr.ParseJSON(e.Raw)
	return e
}

// ConstExpression wraps a constant string, the way plain text keys are
// written in textResourceBindings.
func ConstExpression(s string) *Expression {
	raw, _ := json.Marshal(s)
	return NewExpression(raw)
}

func (e *Expression) MarshalJSON() ([]byte, error) {
	if e == nil || len(e.Raw) == 0 {
		return []byte("null"), nil
	}
	return e.Raw, nil
}

// Valid reports whether the expression parsed.
func (e *Expression) Valid() bool {
	return e != nil && e.Err == nil && e.Expr != nil
}
