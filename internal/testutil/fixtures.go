package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteWordList writes words, one per line, to name inside a fresh temporary
// directory and returns the file path.
func WriteWordList(t *testing.T, name string, words ...string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), name, strings.Join(words, "\n")+"\n")
}

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
