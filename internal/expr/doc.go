// Package expr implements the form expression language.
//
// An expression is JSON: either a scalar constant (string, number, boolean or
// null) or an array whose first element names a function and whose remaining
// elements are the arguments, themselves expressions:
//
//	["equals", ["dataModel", "Age"], 18]
//	["if", ["component", "consent"], "yes", "else", "no"]
//
// Parsing validates the shape (known function, arity, literal argument types)
// and produces an immutable AST. Evaluation is pure: it reads form data,
// instance metadata, application settings and text resources through an Env
// and never writes anything. Values are cty values; only null, bool, number
// and string ever leave an evaluation.
//
// The logical functions and, or and if are lazy. Arguments that do not
// influence the result are never evaluated, so they may refer to rows or
// components that do not exist.
package expr
