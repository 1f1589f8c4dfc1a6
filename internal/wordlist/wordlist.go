// Package wordlist loads newline-delimited word lists from files or glob
// patterns.
package wordlist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/vk/wordgrid/internal/ctxlog"
)

// ErrEmpty is the cause of a LoadError when a source yields no words.
var ErrEmpty = errors.New("word list is empty")

// LoadError reports a word-list source that could not be read or that
// produced no usable lines.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to read word list from %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FileLoader reads word lists from the local file system.
type FileLoader struct{}

// NewFileLoader creates a new file system word-list loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load resolves source to one or more files and returns their words in
// order. A source containing glob metacharacters is expanded with doublestar
// semantics, so "lists/**/*.txt" reads every matching file in lexical order.
func (l *FileLoader) Load(ctx context.Context, source string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	if strings.TrimSpace(source) == "" {
		return nil, &LoadError{Source: source, Err: errors.New("no word list path given")}
	}

	paths, err := resolve(source)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	logger.Debug("Resolved word list source.", "source", source, "files", len(paths))

	var words []string
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, &LoadError{Source: source, Err: err}
		}
		words, err = appendWords(words, f)
		f.Close()
		if err != nil {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("%s: %w", p, err)}
		}
	}
	if len(words) == 0 {
		return nil, &LoadError{Source: source, Err: ErrEmpty}
	}

	logger.Debug("Word list loaded.", "source", source, "words", len(words))
	return words, nil
}

// appendWords appends the words in r, one per line, to words. Trailing
// carriage returns are removed and blank lines are skipped.
func appendWords(words []string, r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

func resolve(source string) ([]string, error) {
	if !hasMeta(source) {
		return []string{source}, nil
	}
	matches, err := doublestar.FilepathGlob(source, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %q", source)
	}
	slices.Sort(matches)
	return matches, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
