// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package filter applies a conjunction of predicates to a word list.
package filter

import "github.com/vk/wordgrid/internal/predicate"

// Filter returns the words accepted by every predicate, in input order. The
// input slice is never modified. With no predicates every word passes;
// rejecting an empty constraint set is the caller's decision.
func Filter(words []string, preds []predicate.Predicate) []string {
	out := make([]string, 0, len(words)/8)
	for _, w := range words {
		if Match(w, preds) {
			out = append(out, w)
		}
	}
	return out
}

// Match reports whether word satisfies all preds, stopping at the first
// rejection.
func Match(word string, preds []predicate.Predicate) bool {
	for _, p := range preds {
		if !p.Check(word) {
			return false
		}
	}
	return true
}
