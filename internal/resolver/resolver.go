package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/formtree/internal/ctxlog"
	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/lookup"
	"github.com/specialistvlad/formtree/internal/tree"
	"github.com/zclconf/go-cty/cty"
)

// ErrNodeNotFound is returned for an indexed id that is not in the tree.
var ErrNodeNotFound = errors.New("node not found")

// Properties are the computed properties of one node.
type Properties struct {
	Hidden   bool              `json:"hidden"`
	Required bool              `json:"required"`
	ReadOnly bool              `json:"readOnly"`
	Texts    map[string]string `json:"texts,omitempty"`
}

type dataSource interface {
	Lookup(ref datamodel.Reference) (cty.Value, error)
}

// Resolver answers property lookups for the nodes of one tree. It is safe for
// concurrent use.
type Resolver struct {
	ctx   context.Context
	table *lookup.Table
	tree  *tree.Tree
	env   expr.Env
	memo  *Memo
	scope string

	mu    sync.RWMutex
	local map[string]result
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMemo shares results with other resolvers through m. scope identifies
// the non-data inputs of env. New drops the entries of m that belong to
// another scope or to a node missing from the tree.
func WithMemo(m *Memo, scope string) Option {
	return func(r *Resolver) {
		r.memo = m
		r.scope = scope
	}
}

// New creates a resolver for t. env supplies the data, instance, settings,
// texts and language; its Location and Components are set per lookup. ctx is
// used for logging.
func New(ctx context.Context, table *lookup.Table, t *tree.Tree, env expr.Env, opts ...Option) *Resolver {
	r := &Resolver{
		ctx:   ctx,
		table: table,
		tree:  t,
		env:   env,
		local: make(map[string]result),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.memo != nil {
		r.memo.retain(r.scope, t)
		ctxlog.FromContext(ctx).Debug("Pruned property memo.", "entries", r.memo.Len())
	}
	return r
}

// IsHidden reports whether a node is hidden: by its own hidden expression, by
// a hidden ancestor, or by its page. Unknown nodes are not hidden.
func (r *Resolver) IsHidden(id string) bool {
	if _, ok := r.tree.FindByID(id); !ok {
		return false
	}
	hidden, err := r.session().hidden(id)
	if err != nil {
		r.logFailure(id, "hidden", nil, err)
		return false
	}
	return hidden
}

// Resolve computes every property of a node.
func (r *Resolver) Resolve(id string) (Properties, error) {
	if _, ok := r.tree.FindByID(id); !ok {
		return Properties{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return r.session().properties(id), nil
}

// Value returns the value a component lookup yields for the node: the data
// at its simpleBinding, or null when the node is hidden or unbound.
func (r *Resolver) Value(id string) (cty.Value, error) {
	if _, ok := r.tree.FindByID(id); !ok {
		return null, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return r.session().value(id)
}

// Evaluate evaluates e in the row context of the node nodeID. An empty nodeID
// evaluates without row context.
func (r *Resolver) Evaluate(e expr.Expr, nodeID string) (cty.Value, error) {
	return r.EvaluateAs(e, nodeID, expr.Any)
}

// EvaluateAs is Evaluate followed by coercion to t.
func (r *Resolver) EvaluateAs(e expr.Expr, nodeID string, t expr.Type) (cty.Value, error) {
	var loc *expr.Location
	if nodeID != "" {
		n, ok := r.tree.FindByID(nodeID)
		if !ok {
			return null, fmt.Errorf("%w: %q", ErrNodeNotFound, nodeID)
		}
		loc = n.Location()
	}
	return expr.EvaluateAs(e, r.session().env(loc), t)
}

func (r *Resolver) session() *session {
	return &session{r: r, visiting: make(map[string]bool)}
}

func (r *Resolver) load(key string) (result, bool) {
	r.mu.RLock()
	res, ok := r.local[key]
	r.mu.RUnlock()
	if ok || r.memo == nil {
		return res, ok
	}

	res, ok = r.memo.get(r.scope, key)
	if !ok || !valid(res.deps, r.env.Data, r.tree) {
		return result{}, false
	}
	r.mu.Lock()
	r.local[key] = res
	r.mu.Unlock()
	return res, true
}

func (r *Resolver) store(key string, res result) {
	r.mu.Lock()
	r.local[key] = res
	r.mu.Unlock()
	if r.memo != nil {
		r.memo.put(r.scope, key, res)
	}
}

func (r *Resolver) logFailure(id, property string, raw []byte, err error) {
	logger := ctxlog.FromContext(r.ctx)
	attrs := []any{"node", id, "property", property, "error", err}
	if raw != nil {
		attrs = append(attrs, "expression", string(raw))
	}
	logger.Warn("Expression evaluation failed, using default.", attrs...)
}
