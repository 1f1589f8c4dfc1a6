// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Predicate, the single constraint a word must satisfy.
//
// The vocabulary of checks is small and fixed, so a Predicate is a tagged
// value rather than an interface: Kind selects the check and Check dispatches
// on it. This keeps predicates comparable and serialisable, which the remote
// session relies on when it reports the active constraints to a client.
package predicate

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrNoConstraints is returned when a configuration produces no predicates.
var ErrNoConstraints = errors.New("no constraints specified")

// Default bounds used for an unset side of a length range.
const (
	DefaultMinLength = 1
	DefaultMaxLength = 1_000_000
)

// Kind identifies which check a Predicate performs.
type Kind int

const (
	StartsWith Kind = iota
	EndsWith
	Contains
	ContainsMultiple
	Excludes
	LengthRange
	DoubleLetter
)

var kindNames = [...]string{
	StartsWith:       "starts_with",
	EndsWith:         "ends_with",
	Contains:         "contains",
	ContainsMultiple: "contains_multiple",
	Excludes:         "excludes",
	LengthRange:      "length_range",
	DoubleLetter:     "double_letter",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown predicate kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown predicate kind %q", text)
}

// Predicate is one constraint over a word. Substring is used by the
// substring kinds, Min and Max by LengthRange.
type Predicate struct {
	Kind      Kind   `json:"kind"`
	Substring string `json:"substring,omitempty"`
	Min       int    `json:"min,omitempty"`
	Max       int    `json:"max,omitempty"`
}

// NewStartsWith returns a prefix check.
func NewStartsWith(s string) Predicate { return Predicate{Kind: StartsWith, Substring: s} }

// NewEndsWith returns a suffix check.
func NewEndsWith(s string) Predicate { return Predicate{Kind: EndsWith, Substring: s} }

// NewContains returns a substring presence check.
func NewContains(s string) Predicate { return Predicate{Kind: Contains, Substring: s} }

// NewContainsMultiple returns a check for at least two non-overlapping
// occurrences of s.
func NewContainsMultiple(s string) Predicate { return Predicate{Kind: ContainsMultiple, Substring: s} }

// NewExcludes returns a substring absence check.
func NewExcludes(s string) Predicate { return Predicate{Kind: Excludes, Substring: s} }

// NewDoubleLetter returns a check for two identical adjacent lowercase letters.
func NewDoubleLetter() Predicate { return Predicate{Kind: DoubleLetter} }

// NewLengthRange returns an inclusive length check. A zero bound means
// unconstrained on that side.
func NewLengthRange(minLen, maxLen int) Predicate {
	if minLen == 0 {
		minLen = DefaultMinLength
	}
	if maxLen == 0 {
		maxLen = DefaultMaxLength
	}
	return Predicate{Kind: LengthRange, Min: minLen, Max: maxLen}
}

// Check reports whether word satisfies the predicate.
func (p Predicate) Check(word string) bool {
	switch p.Kind {
	case StartsWith:
		return strings.HasPrefix(word, p.Substring)
	case EndsWith:
		return strings.HasSuffix(word, p.Substring)
	case Contains:
		return strings.Contains(word, p.Substring)
	case ContainsMultiple:
		return strings.Count(word, p.Substring) > 1
	case Excludes:
		return !strings.Contains(word, p.Substring)
	case LengthRange:
		n := utf8.RuneCountInString(word)
		return p.Min <= n && n <= p.Max
	case DoubleLetter:
		return HasDoubleLetter(word)
	}
	return false
}

// HasDoubleLetter reports whether word has two identical adjacent letters in
// the range a-z. Uppercase letters, digits and punctuation never count.
func HasDoubleLetter(word string) bool {
	for i := 0; i+1 < len(word); i++ {
		c := word[i]
		if c >= 'a' && c <= 'z' && word[i+1] == c {
			return true
		}
	}
	return false
}

func (p Predicate) String() string {
	switch p.Kind {
	case LengthRange:
		return fmt.Sprintf("%s(%d, %d)", p.Kind, p.Min, p.Max)
	case DoubleLetter:
		return p.Kind.String() + "()"
	}
	return fmt.Sprintf("%s(%q)", p.Kind, p.Substring)
}

// cost orders kinds by how expensive they are to evaluate.
func (p Predicate) cost() int {
	switch p.Kind {
	case LengthRange:
		return 0
	case StartsWith, EndsWith:
		return 1
	case DoubleLetter:
		return 2
	}
	return 3
}
