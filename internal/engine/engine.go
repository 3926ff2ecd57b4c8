package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/formtree/internal/ctxlog"
	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/layout"
	"github.com/specialistvlad/formtree/internal/lookup"
	"github.com/specialistvlad/formtree/internal/nodegen"
	"github.com/specialistvlad/formtree/internal/resolver"
	"golang.org/x/sync/singleflight"
)

// ErrNoData is returned by Snapshot when the input carries no data.
var ErrNoData = errors.New("snapshot has no data")

// Engine generates states for one layout set. It is safe for concurrent use.
type Engine struct {
	table     *lookup.Table
	generator *nodegen.Generator
	nodeMemo  *nodegen.Memo
	propMemo  *resolver.Memo
	cycles    error

	group singleflight.Group
}

type options struct {
	memoize bool
}

// Option configures an Engine.
type Option func(*options)

// WithoutMemo makes every snapshot start from scratch.
func WithoutMemo() Option {
	return func(o *options) {
		o.memoize = false
	}
}

// New builds the lookup table for set. Broken containment, duplicate ids and
// reference loops between expressions are logged; they only affect the
// components involved.
func New(ctx context.Context, set *layout.Set, opts ...Option) *Engine {
	logger := ctxlog.FromContext(ctx)
	o := options{memoize: true}
	for _, opt := range opts {
		opt(&o)
	}

	table := lookup.Build(set)
	for _, p := range table.Problems() {
		if p.ParentID == "" {
			logger.Warn("Ignoring duplicate component definition.", "component", p.ChildID, "page", p.Page, "reason", p.Reason)
			continue
		}
		logger.Warn("Ignoring invalid child reference.", "parent", p.ParentID, "child", p.ChildID, "reason", p.Reason)
	}

	e := &Engine{table: table}
	if e.cycles = table.CheckExpressionCycles(); e.cycles != nil {
		logger.Warn("Expressions reference each other in a loop.", "error", e.cycles)
	}

	var genOpts []nodegen.Option
	if o.memoize {
		e.nodeMemo = nodegen.NewMemo()
		e.propMemo = resolver.NewMemo()
		genOpts = append(genOpts, nodegen.WithMemo(e.nodeMemo))
	}
	e.generator = nodegen.New(table, genOpts...)

	logger.Debug("Engine created.", "components", table.Len(), "pages", len(table.Pages()), "memoize", o.memoize)
	return e
}

// Table returns the lookup table of the layout set.
func (e *Engine) Table() *lookup.Table {
	return e.table
}

// Cycles returns the reference loop found between expressions, if any.
func (e *Engine) Cycles() error {
	return e.cycles
}

// Snapshot generates the state for one input. Concurrent calls with the same
// non-empty Version share a single generation.
func (e *Engine) Snapshot(ctx context.Context, in Input) (*State, error) {
	if in.Data == nil {
		return nil, ErrNoData
	}
	if in.Version == "" {
		return e.snapshot(ctx, in)
	}

	v, err, shared := e.group.Do(in.Version, func() (any, error) {
		return e.snapshot(ctx, in)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		ctxlog.FromContext(ctx).Debug("Shared snapshot with a concurrent caller.", "version", in.Version)
	}
	return v.(*State), nil
}

func (e *Engine) snapshot(ctx context.Context, in Input) (*State, error) {
	if in.Version != "" {
		ctx = ctxlog.With(ctx, "version", in.Version)
	}
	logger := ctxlog.FromContext(ctx)

	t := e.generator.Generate(ctx, in.Data)
	env := expr.Env{
		Data:     in.Data,
		Instance: in.Instance,
		Settings: in.Settings,
		Texts:    in.textLookup(),
		Language: in.Language,
	}

	var opts []resolver.Option
	if e.propMemo != nil {
		scope, err := in.scope()
		if err != nil {
			return nil, fmt.Errorf("failed to fingerprint snapshot: %w", err)
		}
		opts = append(opts, resolver.WithMemo(e.propMemo, scope))
	}

	logger.Debug("Generated snapshot.", "nodes", t.Len())
	return &State{
		version:  in.Version,
		tree:     t,
		resolver: resolver.New(ctx, e.table, t, env, opts...),
	}, nil
}
