// Package tree holds the dynamic node tree generated from a layout set and
// one form data snapshot, and the selectors used to navigate it.
//
// Nodes are built fully before they are linked into the tree and expose
// getters only. A Tree is indexed once on construction and is read-only
// afterwards.
package tree
