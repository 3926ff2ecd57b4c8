package tree

import "slices"

// Page is the list of top-level nodes of one page.
type Page struct {
	Name  string
	Nodes []*Node
}

// Tree indexes the nodes of all pages.
//
// A node can be reachable more than once when an independent repeating group
// is rendered inside every row of another group. It is indexed at its first
// occurrence in document order.
type Tree struct {
	pages  []Page
	byID   map[string]*Node
	parent map[string]*Node
	order  []*Node
}

// New indexes pages in document order.
func New(pages ...Page) *Tree {
	t := &Tree{
		byID:   make(map[string]*Node),
		parent: make(map[string]*Node),
	}
	for _, p := range pages {
		t.pages = append(t.pages, Page{Name: p.Name, Nodes: slices.Clone(p.Nodes)})
		for _, n := range p.Nodes {
			t.index(n, nil)
		}
	}
	return t
}

func (t *Tree) index(n, parent *Node) {
	if _, seen := t.byID[n.indexedID]; seen {
		return
	}
	t.byID[n.indexedID] = n
	if parent != nil {
		t.parent[n.indexedID] = parent
	}
	t.order = append(t.order, n)
	for _, c := range n.children {
		t.index(c, n)
	}
}

// FindByID returns the node with the given indexed id.
func (t *Tree) FindByID(id string) (*Node, bool) {
	n, ok := t.byID[id]
	return n, ok
}

// ChildrenOf returns the children of the node with the given indexed id.
func (t *Tree) ChildrenOf(id string) []*Node {
	if n, ok := t.byID[id]; ok {
		return n.Children()
	}
	return nil
}

// ParentOf returns the parent of the node with the given indexed id. Top-level
// nodes have none.
func (t *Tree) ParentOf(id string) (*Node, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// Ancestors returns the parents of a node, nearest first.
func (t *Tree) Ancestors(id string) []*Node {
	var out []*Node
	for p, ok := t.parent[id]; ok; p, ok = t.parent[p.indexedID] {
		out = append(out, p)
	}
	return out
}

// Pages returns the page names in display order.
func (t *Tree) Pages() []string {
	names := make([]string, len(t.pages))
	for i, p := range t.pages {
		names[i] = p.Name
	}
	return names
}

// PageNodes returns the top-level nodes of a page.
func (t *Tree) PageNodes(name string) []*Node {
	for _, p := range t.pages {
		if p.Name == name {
			return slices.Clone(p.Nodes)
		}
	}
	return nil
}

// All returns every indexed node in document order.
func (t *Tree) All() []*Node {
	return slices.Clone(t.order)
}

// Len returns the number of indexed nodes.
func (t *Tree) Len() int {
	return len(t.order)
}

// Walk visits every node of every page depth-first in render order, shared
// nodes once per occurrence. depth is 0 for top-level nodes. Returning false
// from fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	for _, p := range t.pages {
		for _, n := range p.Nodes {
			walk(n, 0)
		}
	}
}
