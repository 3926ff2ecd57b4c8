package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/specialistvlad/formtree/internal/ctxlog"
	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/layout"
	"github.com/specialistvlad/formtree/internal/nodegen"
	"github.com/zclconf/go-cty/cty"
)

var null = cty.NullVal(cty.DynamicPseudoType)

// Result keys are a prefix followed by an indexed id or a page name.
const (
	hiddenKey = "hidden:"
	pageKey   = "page:"
	propsKey  = "props:"
)

// session is one top-level lookup. It tracks the results being computed, to
// detect reference loops, and records what each of them reads.
type session struct {
	r        *Resolver
	visiting map[string]bool
	stack    []*recorder
}

type recorder struct {
	deps []dependency
	// tainted results depend on where the loop was entered and are not cached.
	tainted bool
}

func (s *session) record(d dependency) {
	if n := len(s.stack); n > 0 {
		s.stack[n-1].deps = append(s.stack[n-1].deps, d)
	}
}

// cached returns the result under key, computing it when needed.
func (s *session) cached(key string, compute func() (any, error)) (any, error) {
	if res, ok := s.r.load(key); ok {
		for _, d := range res.deps {
			s.record(d)
		}
		return res.value, nil
	}
	if s.visiting[key] {
		if n := len(s.stack); n > 0 {
			s.stack[n-1].tainted = true
		}
		return nil, fmt.Errorf("%w: %s", expr.ErrCircularReference, key)
	}

	s.visiting[key] = true
	rec := &recorder{}
	s.stack = append(s.stack, rec)
	value, err := compute()
	s.stack = s.stack[:len(s.stack)-1]
	delete(s.visiting, key)

	if n := len(s.stack); n > 0 {
		parent := s.stack[n-1]
		parent.deps = append(parent.deps, rec.deps...)
		parent.tainted = parent.tainted || rec.tainted
	}
	if err == nil && !rec.tainted {
		s.r.store(key, result{value: value, deps: rec.deps})
	}
	return value, err
}

// env is the evaluation environment for loc, reading data through the session.
func (s *session) env(loc *expr.Location) *expr.Env {
	env := s.r.env
	env.Data = recordingSource{s: s}
	env.Components = s
	env.Location = loc
	return &env
}

// recordingSource records every data read as a dependency.
type recordingSource struct {
	s *session
}

func (rs recordingSource) Lookup(ref datamodel.Reference) (cty.Value, error) {
	v := null
	if data := rs.s.r.env.Data; data != nil {
		var err error
		if v, err = data.Lookup(ref); err != nil {
			return v, err
		}
	}
	rs.s.record(dependency{ref: ref, value: v})
	return v, nil
}

func (rs recordingSource) DefaultDataType() string {
	if data := rs.s.r.env.Data; data != nil {
		return data.DefaultDataType()
	}
	return rs.s.r.table.DefaultDataType()
}

// ComponentValue implements expr.ComponentResolver.
func (s *session) ComponentValue(baseID string, loc *expr.Location, rows []int) (cty.Value, error) {
	if _, err := s.r.table.GetComponent(baseID); err != nil {
		return null, fmt.Errorf("%w: %w", expr.ErrUnknownReference, err)
	}
	if len(rows) > 0 {
		var err error
		if loc, err = nodegen.PinRows(baseID, loc, rows, s.r.table); err != nil {
			return null, err
		}
	}
	id, ok := nodegen.MakeIndexedID(baseID, loc, s.r.table)
	if !ok {
		return null, fmt.Errorf("%w: component %q is repeated and no row is given for it", expr.ErrMissingRowContext, baseID)
	}
	return s.value(id)
}

func (s *session) value(id string) (cty.Value, error) {
	n, exists := s.r.tree.FindByID(id)
	s.record(dependency{nodeID: id, exists: exists})
	if !exists {
		return null, nil
	}
	hidden, err := s.hidden(id)
	if err != nil || hidden {
		return null, err
	}
	ref, ok := n.Binding(layout.BindingSimple)
	if !ok {
		return null, nil
	}
	return recordingSource{s: s}.Lookup(ref)
}

func (s *session) hidden(id string) (bool, error) {
	v, err := s.cached(hiddenKey+id, func() (any, error) {
		n, ok := s.r.tree.FindByID(id)
		if !ok {
			return false, nil
		}

		var inherited bool
		var err error
		if parent, ok := s.r.tree.ParentOf(id); ok {
			inherited, err = s.hidden(parent.IndexedID())
		} else {
			inherited, err = s.pageHidden(n.Page())
		}
		if err != nil || inherited {
			return inherited, err
		}
		return s.boolean(n.Expression("hidden"), n.Location(), id, "hidden")
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (s *session) pageHidden(page string) (bool, error) {
	v, err := s.cached(pageKey+page, func() (any, error) {
		return s.boolean(s.r.table.PageHidden(page), nil, page, "page hidden")
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// boolean evaluates a boolean property, false when absent, null or failing.
// Only a reference loop is returned as an error.
func (s *session) boolean(e *layout.Expression, loc *expr.Location, id, property string) (bool, error) {
	if e == nil {
		return false, nil
	}
	if !e.Valid() {
		s.r.logFailure(id, property, e.Raw, e.Err)
		return false, nil
	}
	ctx := ctxlog.With(s.r.ctx, "node", id, "property", property)
	v, err := expr.EvaluateOr(ctx, e.Expr, s.env(loc), expr.Boolean, cty.False)
	if err != nil {
		return false, err
	}
	return v.True(), nil
}

// text resolves one text binding. A constant is a text resource key; any
// other expression yields the text itself. Failures fall back to the binding
// as written.
func (s *session) text(e *layout.Expression, loc *expr.Location, id, key string) (string, error) {
	fallback := rawText(e.Raw)
	if !e.Valid() {
		s.r.logFailure(id, "textResourceBindings."+key, e.Raw, e.Err)
		return fallback, nil
	}

	v, err := expr.EvaluateAs(e.Expr, s.env(loc), expr.String)
	if err != nil {
		if errors.Is(err, expr.ErrCircularReference) {
			return fallback, err
		}
		s.r.logFailure(id, "textResourceBindings."+key, e.Raw, err)
		return fallback, nil
	}
	if v.IsNull() {
		return "", nil
	}

	text := v.AsString()
	if _, constant := e.Expr.(expr.Literal); constant && s.r.env.Texts != nil {
		if resolved, ok := s.r.env.Texts(text); ok {
			return resolved, nil
		}
	}
	return text, nil
}

func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (s *session) properties(id string) Properties {
	v, err := s.cached(propsKey+id, func() (any, error) {
		n, _ := s.r.tree.FindByID(id)
		loc := n.Location()

		var props Properties
		var err error
		if props.Hidden, err = s.hidden(id); err != nil {
			return nil, err
		}
		if props.Required, err = s.boolean(n.Expression("required"), loc, id, "required"); err != nil {
			return nil, err
		}
		if props.ReadOnly, err = s.boolean(n.Expression("readOnly"), loc, id, "readOnly"); err != nil {
			return nil, err
		}

		keys := n.TextKeys()
		for _, key := range keys {
			text, err := s.text(n.Expression("textResourceBindings."+key), loc, id, key)
			if err != nil {
				return nil, err
			}
			if props.Texts == nil {
				props.Texts = make(map[string]string, len(keys))
			}
			props.Texts[key] = text
		}
		return props, nil
	})
	if err != nil {
		s.r.logFailure(id, "properties", nil, err)
		return Properties{}
	}
	props := v.(Properties)
	props.Texts = maps.Clone(props.Texts)
	return props
}
