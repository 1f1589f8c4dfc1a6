// Package termwidth detects the width of the terminal attached to a file
// descriptor.
package termwidth

import (
	"io"

	"golang.org/x/term"
)

// Default is the line width used when no terminal width can be detected.
const Default = 120

// Detect returns the column count of the terminal behind fd, or fallback
// when fd is not a terminal.
func Detect(fd uintptr, fallback int) int {
	if !term.IsTerminal(int(fd)) {
		return fallback
	}
	width, _, err := term.GetSize(int(fd))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// Of detects the width of w when it is backed by a file descriptor, such as
// os.Stdout, and returns fallback otherwise.
func Of(w io.Writer, fallback int) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return Detect(f.Fd(), fallback)
	}
	return fallback
}

// Fraction returns pct percent of width, never less than one column.
func Fraction(width, pct int) int {
	return max(1, width*pct/100)
}
