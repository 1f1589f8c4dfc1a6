// Package yamlcfg provides the YAML implementation of the config.Loader
// interface.
//
// A YAML profile file is a mapping of profile names to their settings:
//
//	ing:
//	  description: Five letter words ending in ing
//	  endswith: ing
//	  minlen: 5
//	  maxlen: 5
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// yamlProfile mirrors config.Overrides with YAML field names.
type yamlProfile struct {
	Description string   `yaml:"description"`
	StartsWith  *string  `yaml:"startswith"`
	EndsWith    *string  `yaml:"endswith"`
	MinLength   *int     `yaml:"minlen"`
	MaxLength   *int     `yaml:"maxlen"`
	Contains    yamlList `yaml:"contains"`
	Multiple    *string  `yaml:"multiple"`
	Double      *bool    `yaml:"double"`
	NotContain  yamlList `yaml:"not_contain"`
	Reversed    *bool    `yaml:"reversed"`
	WordList    *string  `yaml:"wordlist"`
}

// yamlList accepts a sequence of strings or a single comma or space
// separated string.
type yamlList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *yamlList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		items := config.SplitList(node.Value)
		if items == nil {
			items = []string{}
		}
		*l = items
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		if items == nil {
			items = []string{}
		}
		*l = items
		return nil
	}
	return fmt.Errorf("line %d: expected a list of strings", node.Line)
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML profile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load reads and decodes the profiles in the file at path.
func (l *Loader) Load(ctx context.Context, path string) ([]*config.Profile, error) {
	ctxlog.FromContext(ctx).Debug("Loading YAML profiles.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}
	return l.Parse(data, path)
}

// Parse decodes profiles from YAML source. Profiles are returned sorted by
// name; source is recorded on every profile.
func (l *Loader) Parse(data []byte, source string) ([]*config.Profile, error) {
	var doc map[string]*yamlProfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", source, err)
	}

	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	profiles := make([]*config.Profile, 0, len(names))
	for _, name := range names {
		p := doc[name]
		if p == nil {
			p = &yamlProfile{}
		}
		profile, err := p.translate(name, source)
		if err != nil {
			return nil, fmt.Errorf("error parsing profile %q in %s: %w", name, source, err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (p *yamlProfile) translate(name, source string) (*config.Profile, error) {
	if p.MinLength != nil && *p.MinLength < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", config.FieldMinLength, *p.MinLength)
	}
	if p.MaxLength != nil && *p.MaxLength < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", config.FieldMaxLength, *p.MaxLength)
	}
	return &config.Profile{
		Name:        name,
		Description: p.Description,
		Source:      source,
		Overrides: config.Overrides{
			StartsWith:   p.StartsWith,
			EndsWith:     p.EndsWith,
			MinLength:    p.MinLength,
			MaxLength:    p.MaxLength,
			Contains:     p.Contains,
			Multiple:     p.Multiple,
			Double:       p.Double,
			NotContain:   p.NotContain,
			Reversed:     p.Reversed,
			WordListPath: p.WordList,
		},
	}, nil
}
