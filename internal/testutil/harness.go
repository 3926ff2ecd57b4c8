package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles writes files (relative path -> content) below a fresh temporary
// directory and returns that directory. Parent directories are created as
// needed; the directory is removed when the test ends.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// Project returns the files of a complete project built from the shared
// fixtures: the layout set under layouts/, one data document, the nb text
// resources and a formtree.hcl project file pointing at all of them.
func Project() map[string]string {
	files := map[string]string{
		"formtree.hcl":          ProjectHCL,
		"data/model.json":       FormData,
		"texts/nb.json":         TextsNB,
		"layouts/Settings.json": LayoutSettings,
	}
	for name, content := range LayoutPages {
		files["layouts/"+name+".json"] = content
	}
	return files
}
