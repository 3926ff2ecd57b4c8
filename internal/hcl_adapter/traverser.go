package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/formtree/internal/ctxlog"
)

// ProjectFileName is the project file looked up in a project directory.
const ProjectFileName = "formtree.hcl"

// ResolveProjectPath returns the project file for path. If path is a
// directory, the project file inside it is used; a file must have the .hcl
// extension.
func ResolveProjectPath(ctx context.Context, path string) (string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving project path.", "path", path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("project path not found: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("error accessing path %s: %w", path, err)
	}

	if info.IsDir() {
		file := filepath.Join(path, ProjectFileName)
		logger.Debug("Path is a directory, looking for the project file.", "file", file)
		if _, err := os.Stat(file); err != nil {
			return "", fmt.Errorf("no %s in %s", ProjectFileName, path)
		}
		return file, nil
	}

	if filepath.Ext(path) != ".hcl" {
		return "", fmt.Errorf("specified file is not an .hcl file: %s", path)
	}
	return path, nil
}
