// Package formdata holds immutable snapshots of the form data documents, one
// per data type, as cty values. A Snapshot is read-only: every pass of node
// generation and expression evaluation works against exactly one of them.
//
// Absent fields are never an error. Looking up a path that does not exist, or
// that walks through a non-object value, yields a null value; counting rows of
// something that is not an array yields zero.
package formdata
