// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package rank orders matched words by length, then lexicographically.
package rank

import (
	"cmp"
	"slices"
	"unicode/utf8"
)

// Rank returns a sorted copy of words keyed by (length, word). With
// descending set the whole key is reversed: longest first, and words of equal
// length in reverse lexicographic order.
func Rank(words []string, descending bool) []string {
	out := slices.Clone(words)
	slices.SortStableFunc(out, func(a, b string) int {
		c := Compare(a, b)
		if descending {
			return -c
		}
		return c
	})
	return out
}

// Compare orders two words by rune length and then by byte value, which for
// UTF-8 text is code point order.
func Compare(a, b string) int {
	if c := cmp.Compare(utf8.RuneCountInString(a), utf8.RuneCountInString(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}
