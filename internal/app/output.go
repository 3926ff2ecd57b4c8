package app

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/specialistvlad/formtree/internal/engine"
	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/layout"
	"github.com/specialistvlad/formtree/internal/resolver"
	"github.com/specialistvlad/formtree/internal/tree"
	"github.com/zclconf/go-cty/cty"
)

// writeTree prints one line per node, indented by depth, under a header line
// per page.
func writeTree(w io.Writer, state *engine.State) {
	t := state.Tree()
	for _, page := range t.Pages() {
		fmt.Fprintf(w, "page %s\n", page)
		for _, n := range t.PageNodes(page) {
			writeNodeLine(w, state, n, 1)
		}
	}
}

func writeNodeLine(w io.Writer, state *engine.State, n *tree.Node, depth int) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&b, "%s (%s)", n.IndexedID(), n.Type())
	if n.Kind().Repeats() {
		fmt.Fprintf(&b, " rows=%d", n.RowCount())
	}
	if ref, ok := n.Binding(layout.BindingSimple); ok {
		fmt.Fprintf(&b, " %s", ref.Field)
	}
	if state.IsHidden(n.IndexedID()) {
		b.WriteString(" hidden")
	}
	fmt.Fprintln(w, b.String())

	for _, c := range n.Children() {
		writeNodeLine(w, state, c, depth+1)
	}
}

func writeNode(w io.Writer, n *tree.Node, props resolver.Properties, v cty.Value) {
	fmt.Fprintf(w, "id:       %s\n", n.IndexedID())
	fmt.Fprintf(w, "type:     %s\n", n.Type())
	fmt.Fprintf(w, "hidden:   %t\n", props.Hidden)
	fmt.Fprintf(w, "required: %t\n", props.Required)
	fmt.Fprintf(w, "readOnly: %t\n", props.ReadOnly)
	fmt.Fprintf(w, "value:    %s\n", expr.FormatValue(v))

	keys := make([]string, 0, len(props.Texts))
	for k := range props.Texts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "text %s: %s\n", k, props.Texts[k])
	}
}
