package datamodel

import "fmt"

// InvalidPathError is returned when a data model path cannot be parsed.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid data model path %q: %s", e.Path, e.Reason)
}
