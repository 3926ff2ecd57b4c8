package tree

import (
	"encoding/json"

	"github.com/specialistvlad/formtree/internal/datamodel"
)

type nodeJSON struct {
	ID                string                         `json:"id"`
	BaseID            string                         `json:"baseId"`
	Type              string                         `json:"type"`
	RowIndices        []int                          `json:"rowIndices,omitempty"`
	RowCount          int                            `json:"rowCount,omitempty"`
	MultiPageIndex    *int                           `json:"multiPageIndex,omitempty"`
	TabIndex          *int                           `json:"tabIndex,omitempty"`
	DataModelBindings map[string]datamodel.Reference `json:"dataModelBindings,omitempty"`
	Mapping           map[string]string              `json:"mapping,omitempty"`
	Children          []*Node                        `json:"children,omitempty"`
}

// MarshalJSON renders the node and its subtree.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{
		ID:                n.indexedID,
		BaseID:            n.baseID,
		Type:              n.item.Type,
		RowIndices:        n.RowIndices(),
		RowCount:          n.rowCount,
		DataModelBindings: n.item.DataModelBindings,
		Mapping:           n.item.Mapping,
		Children:          n.children,
	}
	if i := n.claim.MultiPageIndex; i >= 0 {
		out.MultiPageIndex = &i
	}
	if i := n.claim.TabIndex; i >= 0 {
		out.TabIndex = &i
	}
	return json.Marshal(out)
}

type pageJSON struct {
	Name  string  `json:"name"`
	Nodes []*Node `json:"nodes"`
}

// MarshalJSON renders every page with its nodes.
func (t *Tree) MarshalJSON() ([]byte, error) {
	pages := make([]pageJSON, len(t.pages))
	for i, p := range t.pages {
		pages[i] = pageJSON{Name: p.Name, Nodes: p.Nodes}
		if pages[i].Nodes == nil {
			pages[i].Nodes = []*Node{}
		}
	}
	return json.Marshal(map[string]any{"pages": pages})
}
