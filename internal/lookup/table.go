package lookup

import (
	"fmt"

	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/specialistvlad/formtree/internal/layout"
)

// LikertItemSuffix is appended to a Likert id to form the id of its
// synthetic row component.
const LikertItemSuffix = "-item"

// Table is the static index of a layout set.
type Table struct {
	set        *layout.Set
	order      []string
	components map[string]*layout.Component
	pageOf     map[string]string
	parent     map[string]string
	claims     map[string][]ChildClaim
	topLevel   map[string][]string
	problems   []Problem
}

// Build indexes every component of set. Pages are visited in order and
// components in the order they are written, so the same set always yields
// the same table.
//
// Claims that cannot be honored (unknown child, child already claimed,
// child on another page, containment loop) are skipped and reported by
// Problems. So is every component reusing an id defined earlier; the first
// definition wins.
func Build(set *layout.Set) *Table {
	t := &Table{
		set:        set,
		components: make(map[string]*layout.Component),
		pageOf:     make(map[string]string),
		parent:     make(map[string]string),
		claims:     make(map[string][]ChildClaim),
		topLevel:   make(map[string][]string),
	}

	for _, page := range set.Pages {
		for _, c := range page.Components {
			if t.register(page.Name, c) && c.Kind() == layout.KindLikert {
				t.register(page.Name, likertItem(c))
			}
		}
	}

	for _, id := range t.order {
		t.claimChildren(t.components[id])
	}

	for _, page := range set.Pages {
		for _, c := range page.Components {
			if t.components[c.ID] != c {
				continue
			}
			if _, claimed := t.parent[c.ID]; !claimed {
				t.topLevel[page.Name] = append(t.topLevel[page.Name], c.ID)
			}
		}
	}
	return t
}

// register adds c unless its id is taken, in which case the duplicate is
// recorded as a problem and false is returned.
func (t *Table) register(page string, c *layout.Component) bool {
	if prev, exists := t.pageOf[c.ID]; exists {
		t.problems = append(t.problems, Problem{
			Page:    page,
			ChildID: c.ID,
			Reason:  fmt.Sprintf("id already defined on page %q", prev),
		})
		return false
	}
	t.order = append(t.order, c.ID)
	t.components[c.ID] = c
	t.pageOf[c.ID] = page
	return true
}

// likertItem synthesizes the component rendered once per Likert question.
func likertItem(likert *layout.Component) *layout.Component {
	item := &layout.Component{
		ID:       likert.ID + LikertItemSuffix,
		Type:     layout.TypeLikertItem,
		Required: likert.Required,
		ReadOnly: likert.ReadOnly,
	}
	if ref, ok := likert.Binding(layout.BindingSimple); ok {
		item.DataModelBindings = map[string]datamodel.Reference{layout.BindingSimple: ref}
	}
	return item
}

func (t *Table) claimChildren(c *layout.Component) {
	switch c.Kind() {
	case layout.KindPlain, layout.KindRepeating:
		kind := ClaimChild
		if c.Kind() == layout.KindRepeating {
			kind = ClaimRepeatingChild
		}
		multiPage := c.IsMultiPage()
		for _, entry := range c.Children {
			ref, err := layout.ParseChildRef(entry, multiPage)
			if err != nil {
				t.problems = append(t.problems, Problem{ParentID: c.ID, ChildID: entry, Reason: err.Error()})
				continue
			}
			t.claim(c.ID, ref.ID, ClaimMeta{Kind: kind, TabIndex: -1, MultiPageIndex: ref.PageIndex})
		}
	case layout.KindTabs:
		for i, tab := range c.Tabs {
			for _, child := range tab.Children {
				t.claim(c.ID, child, ClaimMeta{Kind: ClaimTab, TabIndex: i, MultiPageIndex: -1})
			}
		}
	case layout.KindLikert:
		t.claim(c.ID, c.ID+LikertItemSuffix, ClaimMeta{Kind: ClaimLikertItem, TabIndex: -1, MultiPageIndex: -1})
	}
}

func (t *Table) claim(parentID, childID string, meta ClaimMeta) {
	reason := ""
	switch {
	case t.components[childID] == nil:
		reason = "unknown component"
	case childID == parentID:
		reason = "a component cannot contain itself"
	case t.pageOf[childID] != t.pageOf[parentID]:
		reason = fmt.Sprintf("child is on page %q", t.pageOf[childID])
	}
	if reason == "" {
		if owner, claimed := t.parent[childID]; claimed {
			reason = fmt.Sprintf("already claimed by %q", owner)
		} else if t.isAncestor(childID, parentID) {
			reason = "containment loop"
		}
	}
	if reason != "" {
		t.problems = append(t.problems, Problem{ParentID: parentID, ChildID: childID, Reason: reason})
		return
	}

	meta.Position = len(t.claims[parentID])
	claim := ChildClaim{ParentID: parentID, ChildID: childID, Meta: meta}
	t.claims[parentID] = append(t.claims[parentID], claim)
	t.parent[childID] = parentID
}

func (t *Table) isAncestor(candidate, id string) bool {
	for p, ok := t.parent[id]; ok; p, ok = t.parent[p] {
		if p == candidate {
			return true
		}
	}
	return false
}
