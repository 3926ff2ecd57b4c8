package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "nested/c.json", "notes.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	}

	files, err := FindFilesByExtension(dir, ".json")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
		filepath.Join(dir, "nested", "c.json"),
	}, files)
}

func TestFindFilesByExtension_Errors(t *testing.T) {
	_, err := FindFilesByExtension(t.TempDir(), "")
	require.Error(t, err)

	_, err = FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".json")
	require.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	base := filepath.Join("project", "formtree.hcl")

	require.Equal(t, filepath.Join("project", "layouts"), ResolvePath(base, "layouts"))
	require.Equal(t, "", ResolvePath(base, ""))

	abs := filepath.Join(string(filepath.Separator), "srv", "layouts")
	require.Equal(t, abs, ResolvePath(base, abs))
}
