package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/wordgrid/internal/testutil"
)

func TestLoad_SingleFile(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	path := testutil.WriteWordList(t, "words.txt", "cat", "dog", "Bat")
	words, err := NewFileLoader().Load(ctx, path)

	require.NoError(t, err)
	require.Equal(t, []string{"cat", "dog", "Bat"}, words)
}

func TestLoad_StripsCarriageReturnsAndBlankLines(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	path := testutil.WriteFile(t, t.TempDir(), "dos.txt", "one\r\n\r\ntwo\r\n")
	words, err := NewFileLoader().Load(ctx, path)

	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, words)
}

func TestLoad_GlobReadsMatchesInOrder(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "b/second.txt", "beta\n")
	testutil.WriteFile(t, dir, "a/first.txt", "alpha\n")
	testutil.WriteFile(t, dir, "a/ignored.md", "nope\n")

	words, err := NewFileLoader().Load(ctx, filepath.Join(dir, "**", "*.txt"))

	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, words)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)
	dir := t.TempDir()

	empty := testutil.WriteFile(t, dir, "empty.txt", "\n\n")

	tests := []struct {
		name   string
		source string
		is     error
	}{
		{name: "missing file", source: filepath.Join(dir, "missing.txt"), is: os.ErrNotExist},
		{name: "no usable lines", source: empty, is: ErrEmpty},
		{name: "glob without matches", source: filepath.Join(dir, "*.none")},
		{name: "blank source", source: "  "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFileLoader().Load(ctx, tc.source)
			require.Error(t, err)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "expected *LoadError, got %T", err)
			require.Equal(t, tc.source, loadErr.Source)
			if tc.is != nil {
				require.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestAppendWords(t *testing.T) {
	t.Parallel()

	words, err := appendWords([]string{"x"}, strings.NewReader("a\r\n\nb"))
	require.NoError(t, err)
	require.Equal(t, []string{"x", "a", "b"}, words)

	words, err = appendWords(nil, strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, words)
}
