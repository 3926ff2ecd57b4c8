package tree

import (
	"slices"
	"strconv"
	"strings"

	"github.com/specialistvlad/formtree/internal/datamodel"
	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/layout"
	"github.com/specialistvlad/formtree/internal/lookup"
)

const textPrefix = "textResourceBindings."

// Node is one rendered instance of a component in one row context.
type Node struct {
	// indexedID is the base id followed by `-<row>` per repeating level.
	indexedID string
	baseID    string
	page      string
	// rows are the repeating ancestors and the row taken in each, outermost
	// first.
	rows []expr.RowRef
	// rowBinding is the innermost group binding indexed with its row.
	rowBinding datamodel.Reference
	// item is the component with its id, bindings and mapping rewritten.
	item  *layout.Component
	claim lookup.ClaimMeta
	// rowCount is the number of rows of a repeating container.
	rowCount int
	children []*Node
}

// NodeConfig carries everything needed to construct a Node.
type NodeConfig struct {
	BaseID     string
	Page       string
	Rows       []expr.RowRef
	RowBinding datamodel.Reference
	Item       *layout.Component
	Claim      lookup.ClaimMeta
	RowCount   int
	Children   []*Node
}

// NewNode builds a node. The config slices are copied; Item is taken over
// and must not be modified by the caller afterwards.
func NewNode(cfg NodeConfig) *Node {
	return &Node{
		indexedID:  IndexedID(cfg.BaseID, cfg.Rows),
		baseID:     cfg.BaseID,
		page:       cfg.Page,
		rows:       slices.Clone(cfg.Rows),
		rowBinding: cfg.RowBinding,
		item:       cfg.Item,
		claim:      cfg.Claim,
		rowCount:   cfg.RowCount,
		children:   slices.Clone(cfg.Children),
	}
}

// IndexedID appends one `-<row>` suffix per entry of rows to baseID.
func IndexedID(baseID string, rows []expr.RowRef) string {
	if len(rows) == 0 {
		return baseID
	}
	var b strings.Builder
	b.WriteString(baseID)
	for _, r := range rows {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(r.Index))
	}
	return b.String()
}

func (n *Node) IndexedID() string { return n.indexedID }

func (n *Node) BaseID() string { return n.baseID }

// Type is the component type.
func (n *Node) Type() string { return n.item.Type }

// Page is the name of the page the node is rendered on.
func (n *Node) Page() string { return n.page }

// Item returns a copy of the rewritten component.
func (n *Node) Item() *layout.Component { return n.item.Clone() }

// Kind is the container kind of the node's component.
func (n *Node) Kind() layout.ContainerKind { return n.item.Kind() }

// Expression returns the expression set for property, named as in
// layout.Component.Expressions, or nil.
func (n *Node) Expression(property string) *layout.Expression {
	switch property {
	case "hidden":
		return n.item.Hidden
	case "required":
		return n.item.Required
	case "readOnly":
		return n.item.ReadOnly
	}
	if key, ok := strings.CutPrefix(property, textPrefix); ok {
		return n.item.TextResourceBindings[key]
	}
	return nil
}

// TextKeys returns the sorted keys of the text resource bindings that are set.
func (n *Node) TextKeys() []string {
	keys := make([]string, 0, len(n.item.TextResourceBindings))
	for key, e := range n.item.TextResourceBindings {
		if e != nil {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// Claim describes how the parent holds the node. Top-level nodes have the
// zero claim with TabIndex and MultiPageIndex set to -1.
func (n *Node) Claim() lookup.ClaimMeta { return n.claim }

// RowCount is the number of rows of a repeating container, 0 otherwise.
func (n *Node) RowCount() int { return n.rowCount }

// RowIndices returns the row taken at each repeating level, outermost first.
func (n *Node) RowIndices() []int {
	out := make([]int, len(n.rows))
	for i, r := range n.rows {
		out[i] = r.Index
	}
	return out
}

// Rows returns the repeating ancestors and their rows, outermost first.
func (n *Node) Rows() []expr.RowRef {
	return slices.Clone(n.rows)
}

// Children returns the child nodes in render order.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Binding returns a rewritten data model binding.
func (n *Node) Binding(key string) (datamodel.Reference, bool) {
	return n.item.Binding(key)
}

// Location is the row context for expressions owned by the node.
func (n *Node) Location() *expr.Location {
	return &expr.Location{
		NodeID: n.indexedID,
		Row:    n.rowBinding,
		Rows:   slices.Clone(n.rows),
	}
}
