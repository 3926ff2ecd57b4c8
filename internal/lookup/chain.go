package lookup

import (
	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/specialistvlad/formtree/internal/layout"
)

// RepeatingChain returns the repeating containers that give id a row index,
// outermost first. The indexed id of a node is its base id followed by one
// row per entry of the chain.
//
// A repeating container whose binding is not nested under the binding of the
// repeating container around it is independent: its rows do not depend on the
// outer rows, so the chain restarts there. An independent container itself
// has an empty chain.
func (t *Table) RepeatingChain(id string) []string {
	c, ok := t.components[id]
	if !ok {
		return nil
	}

	var chain []string
	var outer datamodel.Reference
	ancestors := t.Ancestors(id)
	for i := len(ancestors) - 1; i >= 0; i-- {
		a := t.components[ancestors[i]]
		if !a.Kind().Repeats() {
			continue
		}
		if len(chain) > 0 && !nestedUnder(a, outer) {
			chain = chain[:0]
		}
		chain = append(chain, a.ID)
		outer, _ = a.GroupBinding()
	}

	if c.Kind().Repeats() && len(chain) > 0 && !nestedUnder(c, outer) {
		return nil
	}
	return chain
}

// IsIndependent reports whether id is a repeating container nested in another
// repeating container without binding below it.
func (t *Table) IsIndependent(id string) bool {
	c, ok := t.components[id]
	if !ok || !c.Kind().Repeats() {
		return false
	}
	for _, a := range t.Ancestors(id) {
		outer := t.components[a]
		if outer.Kind().Repeats() {
			binding, _ := outer.GroupBinding()
			return !nestedUnder(c, binding)
		}
	}
	return false
}

func nestedUnder(c *layout.Component, outer datamodel.Reference) bool {
	ref, ok := c.GroupBinding()
	return ok && ref.HasPrefix(outer)
}
