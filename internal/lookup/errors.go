package lookup

import (
	"fmt"
	"strings"
)

// ComponentNotFoundError is returned when no component has the requested id.
type ComponentNotFoundError struct {
	ID string
}

func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %q not found", e.ID)
}

// ComponentTypeMismatchError is returned when a component exists but has
// another type than the caller expected.
type ComponentTypeMismatchError struct {
	ID       string
	Expected []string
	Actual   string
}

func (e *ComponentTypeMismatchError) Error() string {
	return fmt.Sprintf("component %q has type %q, expected %s", e.ID, e.Actual, strings.Join(e.Expected, " or "))
}

// CircularReferenceError is returned when component expressions reference
// each other in a loop.
type CircularReferenceError struct {
	Path []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular component reference: %s", strings.Join(e.Path, " -> "))
}
