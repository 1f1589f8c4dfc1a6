package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/wordgrid/internal/testutil"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "b.yaml", "")
	testutil.WriteFile(t, dir, "nested/a.hcl", "")
	testutil.WriteFile(t, dir, "nested/c.yml", "")
	testutil.WriteFile(t, dir, "readme.md", "")

	files, err := FindFilesByExtension(dir, ".hcl", ".yaml", ".yml")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "nested", "a.hcl"),
		filepath.Join(dir, "nested", "c.yml"),
	}, files)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "nope"), ".hcl")
	require.Error(t, err)
}

func TestFindFilesByExtension_PanicsWithoutExtensions(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { _, _ = FindFilesByExtension(".") })
}
