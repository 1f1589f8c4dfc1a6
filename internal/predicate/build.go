package predicate

import (
	"slices"

	"github.com/vk/wordgrid/internal/config"
)

// Build turns a Configuration into the conjunction of predicates it asks for.
// The returned slice is ordered cheapest first; order never affects which
// words match. An empty result means the configuration has no constraints.
func Build(cfg config.Configuration) []Predicate {
	var preds []Predicate
	if cfg.StartsWith != "" {
		preds = append(preds, NewStartsWith(cfg.StartsWith))
	}
	if cfg.EndsWith != "" {
		preds = append(preds, NewEndsWith(cfg.EndsWith))
	}
	if cfg.MinLength != 0 || cfg.MaxLength != 0 {
		preds = append(preds, NewLengthRange(cfg.MinLength, cfg.MaxLength))
	}
	for _, s := range cfg.Contains {
		preds = append(preds, NewContains(s))
	}
	if cfg.Multiple != "" {
		preds = append(preds, NewContainsMultiple(cfg.Multiple))
	}
	if cfg.Double {
		preds = append(preds, NewDoubleLetter())
	}
	for _, s := range cfg.NotContain {
		preds = append(preds, NewExcludes(s))
	}

	slices.SortStableFunc(preds, func(a, b Predicate) int {
		return a.cost() - b.cost()
	})
	return preds
}

// Strings renders every predicate with String.
func Strings(preds []Predicate) []string {
	out := make([]string, len(preds))
	for i, p := range preds {
		out[i] = p.String()
	}
	return out
}
