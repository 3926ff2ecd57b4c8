// Package dag provides a small directed graph keyed by string ids with
// deterministic cycle detection. It is used to check static references
// between layout components before any form data is seen.
package dag
