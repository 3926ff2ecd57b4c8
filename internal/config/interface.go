package config

import (
	"context"
)

// Loader is the interface for a format-specific project loader.
type Loader interface {
	// Load reads a project from path, which is either a project file or a
	// directory holding one, and translates it into the format-agnostic
	// model. Relative paths in the result are resolved against the file.
	Load(ctx context.Context, path string) (*Project, error)
}
