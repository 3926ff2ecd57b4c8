package tree

import (
	"encoding/json"
	"testing"

	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/layout"
	"github.com/specialistvlad/formtree/internal/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noClaim = lookup.ClaimMeta{TabIndex: -1, MultiPageIndex: -1}

func leaf(id, typ string, rows ...expr.RowRef) *Node {
	return NewNode(NodeConfig{
		BaseID: id,
		Page:   "p",
		Rows:   rows,
		Item:   &layout.Component{ID: IndexedID(id, rows), Type: typ},
		Claim:  noClaim,
	})
}

// sampleTree is
//
//	group
//	  rep (2 rows)
//	    field-0
//	    shared
//	    field-1
//	    shared
//	other
func sampleTree() (*Tree, *Node) {
	shared := leaf("shared", "Input")
	row0 := expr.RowRef{GroupID: "rep", Index: 0}
	row1 := expr.RowRef{GroupID: "rep", Index: 1}
	rep := NewNode(NodeConfig{
		BaseID:   "rep",
		Page:     "p",
		Item:     &layout.Component{ID: "rep", Type: layout.TypeRepeatingGroup},
		Claim:    noClaim,
		RowCount: 2,
		Children: []*Node{leaf("field", "Input", row0), shared, leaf("field", "Input", row1), shared},
	})
	group := NewNode(NodeConfig{
		BaseID:   "group",
		Page:     "p",
		Item:     &layout.Component{ID: "group", Type: layout.TypeGroup},
		Claim:    noClaim,
		Children: []*Node{rep},
	})
	return New(Page{Name: "p", Nodes: []*Node{group, leaf("other", "Paragraph")}}, Page{Name: "empty"}), shared
}

func TestIndexedID(t *testing.T) {
	assert.Equal(t, "a", IndexedID("a", nil))
	assert.Equal(t, "a-2-5", IndexedID("a", []expr.RowRef{{GroupID: "outer", Index: 2}, {GroupID: "inner", Index: 5}}))
}

func TestTree_Selectors(t *testing.T) {
	tr, shared := sampleTree()

	assert.Equal(t, 6, tr.Len())
	ids := make([]string, 0, tr.Len())
	for _, n := range tr.All() {
		ids = append(ids, n.IndexedID())
	}
	assert.Equal(t, []string{"group", "rep", "field-0", "shared", "field-1", "other"}, ids)

	n, ok := tr.FindByID("field-1")
	require.True(t, ok)
	assert.Equal(t, "field", n.BaseID())
	assert.Equal(t, []int{1}, n.RowIndices())

	_, ok = tr.FindByID("field")
	assert.False(t, ok)

	parent, ok := tr.ParentOf("field-0")
	require.True(t, ok)
	assert.Equal(t, "rep", parent.IndexedID())
	_, ok = tr.ParentOf("group")
	assert.False(t, ok)

	var ancestors []string
	for _, a := range tr.Ancestors("field-0") {
		ancestors = append(ancestors, a.IndexedID())
	}
	assert.Equal(t, []string{"rep", "group"}, ancestors)

	children := tr.ChildrenOf("rep")
	require.Len(t, children, 4)
	assert.Same(t, shared, children[1])
	assert.Same(t, shared, children[3])
	assert.Nil(t, tr.ChildrenOf("missing"))

	assert.Equal(t, []string{"p", "empty"}, tr.Pages())
	assert.Len(t, tr.PageNodes("p"), 2)
	assert.Empty(t, tr.PageNodes("empty"))
	assert.Nil(t, tr.PageNodes("missing"))
}

func TestTree_Walk(t *testing.T) {
	tr, _ := sampleTree()

	var visited []string
	tr.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.IndexedID())
		return n.Type() != layout.TypeRepeatingGroup || depth > 1
	})
	assert.Equal(t, []string{"group", "rep", "other"}, visited)

	count := 0
	tr.Walk(func(*Node, int) bool { count++; return true })
	assert.Equal(t, 7, count, "shared nodes are visited once per occurrence")
}

func TestNode_IsImmutable(t *testing.T) {
	rows := []expr.RowRef{{GroupID: "rep", Index: 3}}
	child := leaf("c", "Input")
	children := []*Node{child}
	n := NewNode(NodeConfig{BaseID: "n", Rows: rows, Item: &layout.Component{Type: "Input"}, Children: children})

	rows[0].Index = 9
	children[0] = nil
	assert.Equal(t, "n-3", n.IndexedID())
	assert.Same(t, child, n.Children()[0])

	n.RowIndices()[0] = 7
	n.Children()[0] = nil
	n.Rows()[0].Index = 7
	assert.Equal(t, []int{3}, n.RowIndices())
	assert.Same(t, child, n.Children()[0])
}

func TestNode_ItemIsACopy(t *testing.T) {
	hidden := layout.NewExpression(json.RawMessage(`["equals", 1, 1]`))
	n := NewNode(NodeConfig{BaseID: "n", Item: &layout.Component{
		ID:                   "n",
		Type:                 "Input",
		Hidden:               hidden,
		DataModelBindings:    map[string]datamodel.Reference{layout.BindingSimple: datamodel.NewReference("model", "A")},
		TextResourceBindings: map[string]*layout.Expression{"title": layout.ConstExpression("t"), "unset": nil},
	}})

	item := n.Item()
	item.Hidden = nil
	item.Type = "Group"
	item.DataModelBindings[layout.BindingSimple] = datamodel.NewReference("model", "B")
	delete(item.TextResourceBindings, "title")

	assert.Equal(t, "Input", n.Type())
	assert.Same(t, hidden, n.Expression("hidden"))
	ref, ok := n.Binding(layout.BindingSimple)
	require.True(t, ok)
	assert.Equal(t, "A", ref.Field)
	assert.Equal(t, []string{"title"}, n.TextKeys())
	assert.NotNil(t, n.Expression("textResourceBindings.title"))
	assert.Nil(t, n.Expression("required"))
	assert.Nil(t, n.Expression("nope"))
	assert.Equal(t, layout.KindNone, n.Kind())
}

func TestNode_Location(t *testing.T) {
	n := NewNode(NodeConfig{
		BaseID:     "input",
		Rows:       []expr.RowRef{{GroupID: "outer", Index: 1}, {GroupID: "inner", Index: 3}},
		RowBinding: datamodel.NewReference("model", "Outer[1].Inner[3]"),
		Item: &layout.Component{Type: "Input", DataModelBindings: map[string]datamodel.Reference{
			layout.BindingSimple: datamodel.NewReference("model", "Outer[1].Inner[3].Value"),
		}},
	})

	loc := n.Location()
	assert.Equal(t, "input-1-3", loc.NodeID)
	assert.Equal(t, "model/Outer[1].Inner[3]", loc.Row.String())
	row, ok := loc.RowIndex("inner")
	require.True(t, ok)
	assert.Equal(t, 3, row)

	ref, ok := n.Binding(layout.BindingSimple)
	require.True(t, ok)
	assert.Equal(t, "Outer[1].Inner[3].Value", ref.Field)
}

func TestTree_MarshalJSON(t *testing.T) {
	row := []expr.RowRef{{GroupID: "mp", Index: 0}}
	child := NewNode(NodeConfig{
		BaseID: "a",
		Rows:   row,
		Item:   &layout.Component{ID: "a-0", Type: "Input"},
		Claim:  lookup.ClaimMeta{Kind: lookup.ClaimRepeatingChild, TabIndex: -1, MultiPageIndex: 1},
	})
	group := NewNode(NodeConfig{
		BaseID:   "mp",
		Item:     &layout.Component{ID: "mp", Type: layout.TypeRepeatingGroup},
		Claim:    noClaim,
		RowCount: 1,
		Children: []*Node{child},
	})

	b, err := json.Marshal(New(Page{Name: "p", Nodes: []*Node{group}}, Page{Name: "empty"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"pages": [
		{"name": "p", "nodes": [
			{"id": "mp", "baseId": "mp", "type": "RepeatingGroup", "rowCount": 1, "children": [
				{"id": "a-0", "baseId": "a", "type": "Input", "rowIndices": [0], "multiPageIndex": 1}
			]}
		]},
		{"name": "empty", "nodes": []}
	]}`, string(b))
}
