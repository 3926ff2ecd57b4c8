// Package lookup builds the static lookup table of a layout set: every
// component by id, the page it lives on, its parent and its ordered children.
//
// A Table is a pure function of the layout set. It is built once per load,
// knows nothing about form data, and is safe for concurrent reads.
package lookup
