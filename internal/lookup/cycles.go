package lookup

import (
	"errors"

	"github.com/specialistvlad/formtree/internal/dag"
	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/layout"
)

// pageNode names a page in the reference graph.
func pageNode(page string) string {
	return "page:" + page
}

// CheckExpressionCycles reports hidden expressions that reference each other
// in a loop through the component function. Such a loop can never be
// evaluated: the value of a component is null while it is hidden, and a
// component is hidden when its container or its page is.
func (t *Table) CheckExpressionCycles() error {
	g := dag.New()
	for _, id := range t.order {
		g.AddNode(id)
	}
	for _, page := range t.Pages() {
		g.AddNode(pageNode(page))
	}

	for _, id := range t.order {
		container := pageNode(t.pageOf[id])
		if parent, ok := t.parent[id]; ok {
			container = parent
		}
		if err := g.AddEdge(container, id); err != nil {
			return err
		}
		if err := t.addHiddenEdges(g, id, t.components[id].Hidden); err != nil {
			return err
		}
	}
	for _, page := range t.Pages() {
		if err := t.addHiddenEdges(g, pageNode(page), t.PageHidden(page)); err != nil {
			return err
		}
	}

	err := g.DetectCycles()
	var cycle *dag.CycleError
	if errors.As(err, &cycle) {
		return &CircularReferenceError{Path: cycle.Path}
	}
	return err
}

// addHiddenEdges makes node depend on every component its hidden expression
// references.
func (t *Table) addHiddenEdges(g *dag.Graph, node string, hidden *layout.Expression) error {
	if hidden == nil || !hidden.Valid() {
		return nil
	}
	for _, target := range expr.ComponentRefs(hidden.Expr) {
		if target == node {
			return &CircularReferenceError{Path: []string{node, node}}
		}
		if !g.Has(target) {
			continue
		}
		if err := g.AddEdge(target, node); err != nil {
			return err
		}
	}
	return nil
}
