// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package layout is the static form definition as authored: pages of
// components, each with an id, a type, data model bindings, children and
// expressions for hidden, required and readOnly.
//
// # Core Concepts
//
//   - Set: every page of one form, in display order, plus the data type that
//     bindings without an explicit data type refer to.
//
//   - Page: a named list of top-level components and an optional hidden
//     expression for the whole page.
//
//   - Component: one authored component. Containers refer to their children
//     by id; the children are defined elsewhere on the same page set.
//
// A Set is read once and never modified afterwards. Expressions that fail to
// parse do not fail the load: the parse error travels with the expression and
// surfaces when something tries to evaluate it.
package layout
