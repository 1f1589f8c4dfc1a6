// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package grid lays words out in right-aligned, fixed-width columns wrapped
// at a target line width.
package grid

import (
	"strings"
	"unicode/utf8"
)

// ColumnPadding is the number of columns added to the longest word to form
// the column width.
const ColumnPadding = 2

// Format renders words as a grid no wider than width where possible. The
// column width is computed once from the longest word, so every cell has the
// same width. Each line, including the last, ends with a newline. A word
// wider than the line still gets a line of its own.
func Format(words []string, width int) string {
	if len(words) == 0 {
		return ""
	}
	col := ColumnWidth(words)

	var out, line strings.Builder
	lineLen := 0
	for _, w := range words {
		if lineLen > 0 && lineLen+col > width {
			out.WriteString(line.String())
			out.WriteByte('\n')
			line.Reset()
			lineLen = 0
		}
		line.WriteString(strings.Repeat(" ", col-utf8.RuneCountInString(w)))
		line.WriteString(w)
		lineLen += col
	}
	if lineLen > 0 {
		out.WriteString(line.String())
		out.WriteByte('\n')
	}
	return out.String()
}

// ColumnWidth returns the width of one cell for words: the longest word's
// length in characters plus ColumnPadding.
func ColumnWidth(words []string) int {
	longest := 0
	for _, w := range words {
		longest = max(longest, utf8.RuneCountInString(w))
	}
	return longest + ColumnPadding
}

// Lines splits formatted grid text into its lines without trailing newlines.
func Lines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Words recovers the word sequence from formatted grid text by stripping the
// padding from every cell.
func Words(text string) []string {
	var words []string
	for _, l := range Lines(text) {
		words = append(words, strings.Fields(l)...)
	}
	return words
}
