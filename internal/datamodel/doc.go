/*
Package datamodel provides a structured representation of references into the
form-data document, based on the canonical dotted format `a.b[2].c`.

A Reference pairs a data type (which data document) with a field path. Paths
without bracketed row indices are "unbound" and point at the schema-level
field; paths with indices are "resolved" and point at a specific row.

This package centralizes all parsing, formatting and rewriting of such paths:
conversion to and from JSON pointers, inserting row indices for repeating
groups, and transposing a path onto the row being evaluated.
*/
package datamodel
