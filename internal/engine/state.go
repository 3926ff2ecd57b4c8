package engine

import (
	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/resolver"
	"github.com/specialistvlad/formtree/internal/tree"
	"github.com/zclconf/go-cty/cty"
)

// State is the generated tree of one snapshot plus lookups against it.
type State struct {
	version  string
	tree     *tree.Tree
	resolver *resolver.Resolver
}

// Version returns the version of the input the state was generated from.
func (s *State) Version() string {
	return s.version
}

// Tree returns the generated node tree.
func (s *State) Tree() *tree.Tree {
	return s.tree
}

// Evaluate evaluates e in the row context of nodeID. An empty nodeID
// evaluates without row context.
func (s *State) Evaluate(e expr.Expr, nodeID string) (cty.Value, error) {
	return s.resolver.Evaluate(e, nodeID)
}

// EvaluateAs is Evaluate with the result coerced to t.
func (s *State) EvaluateAs(e expr.Expr, nodeID string, t expr.Type) (cty.Value, error) {
	return s.resolver.EvaluateAs(e, nodeID, t)
}

// Properties resolves the hidden, required, readOnly and text properties of
// a node.
func (s *State) Properties(nodeID string) (resolver.Properties, error) {
	return s.resolver.Resolve(nodeID)
}

// IsHidden reports whether the node is hidden.
func (s *State) IsHidden(nodeID string) bool {
	return s.resolver.IsHidden(nodeID)
}

// Value returns what a component lookup of the node yields.
func (s *State) Value(nodeID string) (cty.Value, error) {
	return s.resolver.Value(nodeID)
}
