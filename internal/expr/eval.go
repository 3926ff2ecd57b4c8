package expr

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/formtree/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Evaluate runs e against env. The result is null, bool, number or string.
func Evaluate(e Expr, env *Env) (cty.Value, error) {
	if env == nil {
		env = &Env{}
	}
	ev := &evaluator{env: env, root: e}
	return ev.eval(e)
}

// EvaluateAs evaluates e and coerces the result to t.
func EvaluateAs(e Expr, env *Env, t Type) (cty.Value, error) {
	v, err := Evaluate(e, env)
	if err != nil {
		return nullAny, err
	}
	out, err := Coerce(v, t)
	if err != nil {
		return nullAny, &EvaluationError{Expr: e, Err: err}
	}
	return out, nil
}

// EvaluateOr evaluates e as t and returns def when evaluation fails or the
// result is null. Failures are logged as warnings with the logger in ctx. A
// reference loop is not a failure of e and is returned as the error.
func EvaluateOr(ctx context.Context, e Expr, env *Env, t Type, def cty.Value) (cty.Value, error) {
	v, err := EvaluateAs(e, env, t)
	if errors.Is(err, ErrCircularReference) {
		return def, err
	}
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Expression evaluation failed, using default.", "expression", e.String(), "error", err)
		return def, nil
	}
	if v.IsNull() {
		return def, nil
	}
	return v, nil
}

type evaluator struct {
	env  *Env
	root Expr
	// path holds the array positions from root to the expression being
	// evaluated.
	path []int
}

func (ev *evaluator) eval(e Expr) (cty.Value, error) {
	switch e := e.(type) {
	case Literal:
		return normalize(e.Value), nil
	case *Call:
		fn, ok := functions[e.Func]
		if !ok {
			return nullAny, ev.fail(fmt.Errorf("%w %q", ErrUnknownFunction, e.Func))
		}
		if n := len(e.Args); n < fn.min || (fn.max >= 0 && n > fn.max) {
			return nullAny, ev.fail(fmt.Errorf("%w: %s expects %s, got %d", ErrArity, e.Func, fn.arity(), n))
		}
		v, err := fn.eval(ev, e.Args)
		if err != nil {
			return nullAny, ev.fail(err)
		}
		return normalize(v), nil
	case nil:
		return nullAny, nil
	default:
		return nullAny, ev.fail(fmt.Errorf("%w: unsupported expression node %T", ErrInvalidArgument, e))
	}
}

// fail attaches the current position to err unless an inner call already
// did. Errors from other evaluations arrive wrapped and get a position here.
func (ev *evaluator) fail(err error) error {
	if _, ok := err.(*EvaluationError); ok {
		return err
	}
	return &EvaluationError{Expr: ev.root, Path: formatPath(ev.path), Err: err}
}

// arg evaluates args[i] and coerces the result to t.
func (ev *evaluator) arg(args []Expr, i int, t Type) (cty.Value, error) {
	ev.path = append(ev.path, i+1)
	defer func() { ev.path = ev.path[:len(ev.path)-1] }()

	v, err := ev.eval(args[i])
	if err != nil {
		return nullAny, err
	}
	out, err := Coerce(v, t)
	if err != nil {
		return nullAny, ev.fail(err)
	}
	return out, nil
}

// stringArg reports ok=false for null.
func (ev *evaluator) stringArg(args []Expr, i int) (string, bool, error) {
	v, err := ev.arg(args, i, String)
	if err != nil || v.IsNull() {
		return "", false, err
	}
	return v.AsString(), true, nil
}

// numberArg reports ok=false for null.
func (ev *evaluator) numberArg(args []Expr, i int) (float64, bool, error) {
	v, err := ev.arg(args, i, Number)
	if err != nil || v.IsNull() {
		return 0, false, err
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, false, ev.fail(err)
	}
	return f, true, nil
}

// truthy evaluates args[i] as a boolean where null counts as false.
func (ev *evaluator) truthy(args []Expr, i int) (bool, error) {
	v, err := ev.arg(args, i, Boolean)
	if err != nil {
		return false, err
	}
	return !v.IsNull() && v.True(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
