package lookup

import (
	"slices"

	"github.com/specialistvlad/formtree/internal/layout"
)

// GetComponent returns the component with the given id. When expectedType is
// given the component must have one of those types.
func (t *Table) GetComponent(id string, expectedType ...string) (*layout.Component, error) {
	c, ok := t.components[id]
	if !ok {
		return nil, &ComponentNotFoundError{ID: id}
	}
	if len(expectedType) > 0 && !slices.Contains(expectedType, c.Type) {
		return nil, &ComponentTypeMismatchError{ID: id, Expected: expectedType, Actual: c.Type}
	}
	return c, nil
}

// Component returns the component with the given id.
func (t *Table) Component(id string) (*layout.Component, bool) {
	c, ok := t.components[id]
	return c, ok
}

// IDs returns every component id in document order, synthetic Likert items
// right after their Likert.
func (t *Table) IDs() []string {
	return slices.Clone(t.order)
}

// Len returns the number of components, synthetic ones included.
func (t *Table) Len() int {
	return len(t.order)
}

// DefaultDataType is the data type of bindings written without one.
func (t *Table) DefaultDataType() string {
	return t.set.DefaultDataType
}

// Pages returns the page names in display order.
func (t *Table) Pages() []string {
	return t.set.PageNames()
}

// PageHidden returns the hidden expression of a page, nil when it has none.
func (t *Table) PageHidden(page string) *layout.Expression {
	if p, ok := t.set.Page(page); ok {
		return p.Hidden
	}
	return nil
}

// Page returns the page a component lives on.
func (t *Table) Page(id string) (string, bool) {
	page, ok := t.pageOf[id]
	return page, ok
}

// TopLevel returns the unclaimed components of a page in document order.
func (t *Table) TopLevel(page string) []string {
	return slices.Clone(t.topLevel[page])
}

// Parent returns the container holding id.
func (t *Table) Parent(id string) (string, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// Ancestors returns the containers holding id, nearest first.
func (t *Table) Ancestors(id string) []string {
	var out []string
	for p, ok := t.parent[id]; ok; p, ok = t.parent[p] {
		out = append(out, p)
	}
	return out
}

// Children returns the ids held by a container, in claim order.
func (t *Table) Children(id string) []string {
	claims := t.claims[id]
	out := make([]string, len(claims))
	for i, c := range claims {
		out[i] = c.ChildID
	}
	return out
}

// Claims returns the claims made by a container, in order.
func (t *Table) Claims(id string) []ChildClaim {
	return slices.Clone(t.claims[id])
}

// Problems returns the claims and definitions skipped during Build.
func (t *Table) Problems() []Problem {
	return slices.Clone(t.problems)
}
