// Package engine ties the layout, the node generator and the resolver
// together. An Engine is built once per layout set; every data snapshot then
// yields an immutable State holding the generated tree and answering
// expression and property lookups against it.
//
// Results are carried from one snapshot to the next: nodes whose rows did not
// change are reused by reference, and resolved properties are reused while the
// data they were computed from is unchanged.
package engine
