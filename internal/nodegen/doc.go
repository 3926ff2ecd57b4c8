// Package nodegen expands the static layout into the dynamic node tree for
// one form data snapshot.
//
// Non-repeating containers render their children once. A repeating group or
// a Likert renders its children once per element of the array its group
// binding points at. Every node rendered inside rows gets the rows appended
// to its id, and its data model bindings and mapping keys rewritten to
// address that row.
package nodegen
