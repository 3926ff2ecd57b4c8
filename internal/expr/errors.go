package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Reasons an evaluation can fail. EvaluationError wraps exactly one of these.
var (
	ErrUnknownFunction   = errors.New("unknown function")
	ErrArity             = errors.New("wrong number of arguments")
	ErrType              = errors.New("type mismatch")
	ErrMissingRowContext = errors.New("missing row context")
	ErrUnknownReference  = errors.New("unknown reference")
	ErrCircularReference = errors.New("circular reference")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// EvaluationError reports a failure while evaluating an expression. Path
// locates the failing sub-expression inside Expr using array positions,
// e.g. `[2][1]`; it is empty for the root.
type EvaluationError struct {
	Expr Expr
	Path string
	Err  error
}

func (e *EvaluationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("expression %s: %v", e.Expr, e.Err)
	}
	return fmt.Sprintf("expression %s at %s: %v", e.Expr, e.Path, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// Issue is one problem found while validating an expression.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError lists everything wrong with an expression's shape.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "invalid expression: " + strings.Join(parts, "; ")
}

// formatPath renders argument positions as `[1][0]`.
func formatPath(path []int) string {
	var sb strings.Builder
	for _, p := range path {
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(p))
		sb.WriteByte(']')
	}
	return sb.String()
}
