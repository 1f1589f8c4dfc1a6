// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Evaluate, the pure pipeline shared by every mode:
// configuration to predicates, predicates to matches, matches to a ranked
// sequence, and the ranked sequence to grid text.
package session

import (
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/filter"
	"github.com/vk/wordgrid/internal/grid"
	"github.com/vk/wordgrid/internal/predicate"
	"github.com/vk/wordgrid/internal/rank"
)

// Result is the outcome of one full evaluation.
type Result struct {
	Predicates []predicate.Predicate `json:"predicates"`
	Words      []string              `json:"words"`
	Text       string                `json:"text"`
	Width      int                   `json:"width"`
	// Notice is a message for the user that did not prevent evaluation,
	// such as a missing constraint in interactive mode.
	Notice string `json:"notice,omitempty"`
}

// Evaluate runs the whole pipeline over words. It returns
// predicate.ErrNoConstraints when cfg asks for nothing; the caller decides
// whether that is fatal.
func Evaluate(words []string, cfg config.Configuration, width int) (Result, error) {
	preds := predicate.Build(cfg)
	if len(preds) == 0 {
		return Result{Width: width}, predicate.ErrNoConstraints
	}
	ranked := rank.Rank(filter.Filter(words, preds), cfg.Reversed)
	return Result{
		Predicates: preds,
		Words:      ranked,
		Text:       grid.Format(ranked, width),
		Width:      width,
	}, nil
}
