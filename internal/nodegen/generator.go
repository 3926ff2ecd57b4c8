package nodegen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/specialistvlad/formtree/internal/ctxlog"
	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/specialistvlad/formtree/internal/layout"
	"github.com/specialistvlad/formtree/internal/lookup"
	"github.com/specialistvlad/formtree/internal/tree"
)

// RowSource reports the number of rows behind a group binding: the length of
// the array it points at, 0 when it is absent or not an array.
type RowSource interface {
	RowCount(ref datamodel.Reference) (int, error)
}

// Generator builds node trees for one lookup table.
type Generator struct {
	table *lookup.Table
	memo  *Memo
	// dynamic marks components with a repeating container in their subtree.
	dynamic map[string]bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithMemo makes the generator reuse unchanged subtrees from earlier
// generations kept in m.
func WithMemo(m *Memo) Option {
	return func(g *Generator) {
		g.memo = m
	}
}

// New creates a generator for table.
func New(table *lookup.Table, opts ...Option) *Generator {
	g := &Generator{
		table:   table,
		dynamic: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	for _, id := range table.IDs() {
		g.markDynamic(id)
	}
	return g
}

func (g *Generator) markDynamic(id string) bool {
	if d, done := g.dynamic[id]; done {
		return d
	}
	c, _ := g.table.Component(id)
	d := c.Kind().Repeats()
	for _, child := range g.table.Children(id) {
		if g.markDynamic(child) {
			d = true
		}
	}
	g.dynamic[id] = d
	return d
}

// topLevelClaim is the claim of nodes placed directly on a page.
var topLevelClaim = lookup.ClaimMeta{TabIndex: -1, MultiPageIndex: -1}

// Generate builds the node tree for data. A binding that is not a valid path
// is logged and dropped from the generated item, which then reads no value
// through it; a group binding dropped that way yields zero rows. A child
// missing from the table is logged and left out.
func (g *Generator) Generate(ctx context.Context, data RowSource) *tree.Tree {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting node generation.")

	r := &run{
		gen:     g,
		data:    data,
		logger:  logger,
		shared:  make(map[string]*tree.Node),
		touched: make(map[string]bool),
	}

	var pages []tree.Page
	for _, page := range g.table.Pages() {
		var nodes []*tree.Node
		for _, id := range g.table.TopLevel(page) {
			if n := r.node(id, page, topLevelClaim, frame{}); n != nil {
				nodes = append(nodes, n)
			}
		}
		pages = append(pages, tree.Page{Name: page, Nodes: nodes})
	}

	if g.memo != nil {
		g.memo.retain(r.touched)
	}
	t := tree.New(pages...)
	logger.Debug("Finished node generation.", "nodes", t.Len(), "reused", r.reused)
	return t
}

// run is the state of one Generate call.
type run struct {
	gen    *Generator
	data   RowSource
	logger *slog.Logger
	// shared holds independent containers already generated in this run.
	shared  map[string]*tree.Node
	touched map[string]bool
	reused  int
}

func (r *run) node(id, page string, claim lookup.ClaimMeta, f frame) *tree.Node {
	var expected []string
	if claim.Kind == lookup.ClaimLikertItem {
		expected = append(expected, layout.TypeLikertItem)
	}
	c, err := r.gen.table.GetComponent(id, expected...)
	if err != nil {
		r.logger.Warn("Skipping component that cannot be generated.", "component", id, "error", err)
		return nil
	}

	independent := r.gen.table.IsIndependent(id)
	if independent {
		f = frame{}
		if n, ok := r.shared[id]; ok {
			return n
		}
	}

	indexedID := tree.IndexedID(id, f.rows())
	shape, cacheable := "", r.gen.memo != nil
	if cacheable {
		if shape, err = r.shape(id, f); err != nil {
			cacheable = false
		} else if n, hit := r.gen.memo.get(indexedID, shape); hit {
			r.reused++
			r.touch(n)
			if independent {
				r.shared[id] = n
			}
			return n
		}
	}

	n := r.build(c, indexedID, page, claim, f)
	if cacheable {
		r.gen.memo.put(indexedID, shape, n)
		r.touched[indexedID] = true
	}
	if independent {
		r.shared[id] = n
	}
	return n
}

func (r *run) build(c *layout.Component, indexedID, page string, claim lookup.ClaimMeta, f frame) *tree.Node {
	item, dropped := f.rewrite(c, indexedID)
	for _, d := range dropped {
		r.logger.Warn("Dropping binding that is not a valid path.", "component", indexedID, "binding", d.key, "error", d.err)
	}
	cfg := tree.NodeConfig{
		BaseID:     c.ID,
		Page:       page,
		Rows:       f.rows(),
		RowBinding: f.rowBinding(),
		Item:       item,
		Claim:      claim,
	}

	switch c.Kind() {
	case layout.KindNone:
	case layout.KindPlain, layout.KindTabs:
		cfg.Children = r.children(c.ID, page, f)
	case layout.KindRepeating, layout.KindLikert:
		group, count := r.rowCount(item)
		cfg.RowCount = count
		for row := 0; row < count; row++ {
			rowFrame := f.push(level{groupID: c.ID, binding: group, row: row})
			cfg.Children = append(cfg.Children, r.children(c.ID, page, rowFrame)...)
		}
	}
	return tree.NewNode(cfg)
}

func (r *run) children(id, page string, f frame) []*tree.Node {
	var out []*tree.Node
	for _, claim := range r.gen.table.Claims(id) {
		if n := r.node(claim.ChildID, page, claim.Meta, f); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// rowCount reads the rows of a repeating item whose bindings are already
// rewritten for the enclosing rows. A group binding that cannot be read gives
// zero rows.
func (r *run) rowCount(item *layout.Component) (datamodel.Reference, int) {
	group, ok := item.GroupBinding()
	if !ok {
		return group, 0
	}
	count, err := r.data.RowCount(group)
	if err != nil {
		r.logger.Warn("Reading no rows for group binding.", "component", item.ID, "binding", group.String(), "error", err)
		return group, 0
	}
	return group, count
}

// touch marks a reused subtree as still in use.
func (r *run) touch(n *tree.Node) {
	r.touched[n.IndexedID()] = true
	for _, c := range n.Children() {
		r.touch(c)
	}
}

// shape describes the row counts below id in frame f.
func (r *run) shape(id string, f frame) (string, error) {
	var b strings.Builder
	if err := r.writeShape(&b, id, f); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *run) writeShape(b *strings.Builder, id string, f frame) error {
	if !r.gen.dynamic[id] {
		return nil
	}
	if r.gen.table.IsIndependent(id) {
		f = frame{}
	}
	c, _ := r.gen.table.Component(id)

	if !c.Kind().Repeats() {
		for _, child := range r.gen.table.Children(id) {
			if err := r.writeShape(b, child, f); err != nil {
				return err
			}
		}
		return nil
	}

	count := 0
	group, ok := c.GroupBinding()
	if ok {
		var err error
		if group, err = f.rewriteRef(group); err != nil {
			return err
		}
		if count, err = r.data.RowCount(group); err != nil {
			return err
		}
	}
	fmt.Fprintf(b, "%s=%d(", id, count)
	for row := 0; row < count; row++ {
		rowFrame := f.push(level{groupID: id, binding: group, row: row})
		for _, child := range r.gen.table.Children(id) {
			if err := r.writeShape(b, child, rowFrame); err != nil {
				return err
			}
		}
	}
	b.WriteByte(')')
	return nil
}
