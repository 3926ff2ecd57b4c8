// Package resolver computes the dynamic properties of the nodes of one tree:
// whether a node is hidden, required or read-only, its texts and its value as
// seen by the component function of expressions.
//
// Expression failures never abort a lookup. They are logged and the property
// falls back to its default (visible, optional, editable), so that one broken
// expression leaves the rest of the form usable.
//
// Results are cached together with the data they were computed from: every
// form data field read, and the presence of every node looked up. A Memo
// shared between resolvers of successive snapshots reuses a result for as
// long as all of those are unchanged.
package resolver
