package config

import "slices"

// Configuration holds the current value of every constraint the user can set.
// It is rebuilt into a fresh predicate set on every evaluation.
type Configuration struct {
	StartsWith string
	EndsWith   string
	MinLength  int
	MaxLength  int
	Contains   []string
	Multiple   string
	Double     bool
	NotContain []string
	Reversed   bool

	WordListPath string
	Interactive  bool
}

// Clone returns a deep copy so callers can edit the result without touching
// the receiver's slices.
func (c Configuration) Clone() Configuration {
	c.Contains = slices.Clone(c.Contains)
	c.NotContain = slices.Clone(c.NotContain)
	return c
}

// Profile is a named, reusable set of constraint overrides loaded from a file.
type Profile struct {
	Name        string
	Description string
	Source      string // file the profile was read from
	Overrides   Overrides
}

// Overrides is a partial Configuration. A nil field leaves the target value
// untouched when applied.
type Overrides struct {
	StartsWith   *string
	EndsWith     *string
	MinLength    *int
	MaxLength    *int
	Contains     []string
	Multiple     *string
	Double       *bool
	NotContain   []string
	Reversed     *bool
	WordListPath *string
}

// Apply copies every set override onto cfg.
func (o Overrides) Apply(cfg *Configuration) {
	if o.StartsWith != nil {
		cfg.StartsWith = *o.StartsWith
	}
	if o.EndsWith != nil {
		cfg.EndsWith = *o.EndsWith
	}
	if o.MinLength != nil {
		cfg.MinLength = *o.MinLength
	}
	if o.MaxLength != nil {
		cfg.MaxLength = *o.MaxLength
	}
	if o.Contains != nil {
		cfg.Contains = slices.Clone(o.Contains)
	}
	if o.Multiple != nil {
		cfg.Multiple = *o.Multiple
	}
	if o.Double != nil {
		cfg.Double = *o.Double
	}
	if o.NotContain != nil {
		cfg.NotContain = slices.Clone(o.NotContain)
	}
	if o.Reversed != nil {
		cfg.Reversed = *o.Reversed
	}
	if o.WordListPath != nil {
		cfg.WordListPath = *o.WordListPath
	}
}

// FindProfile returns the profile with the given name, or nil.
func FindProfile(profiles []*Profile, name string) *Profile {
	for _, p := range profiles {
		if p.Name == name {
			return p
		}
	}
	return nil
}
