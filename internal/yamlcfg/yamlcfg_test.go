package yamlcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/testutil"
)

func TestLoad_Profiles(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	path := testutil.WriteFile(t, t.TempDir(), "profiles.yaml", `
vowels:
  contains: [a, e]
  not_contain: "x, q"
  double: true
ing:
  description: Five letter words ending in ing
  endswith: ing
  minlen: 5
  maxlen: 5
  reversed: true
empty:
`)

	profiles, err := NewLoader().Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, []string{"empty", "ing", "vowels"}, []string{profiles[0].Name, profiles[1].Name, profiles[2].Name})

	var cfg config.Configuration
	profiles[1].Overrides.Apply(&cfg)
	assert.Equal(t, config.Configuration{EndsWith: "ing", MinLength: 5, MaxLength: 5, Reversed: true}, cfg)
	assert.Equal(t, "Five letter words ending in ing", profiles[1].Description)
	assert.Equal(t, path, profiles[1].Source)

	cfg = config.Configuration{}
	profiles[2].Overrides.Apply(&cfg)
	assert.Equal(t, config.Configuration{Contains: []string{"a", "e"}, NotContain: []string{"x", "q"}, Double: true}, cfg)

	cfg = config.Configuration{StartsWith: "keep"}
	profiles[0].Overrides.Apply(&cfg)
	assert.Equal(t, config.Configuration{StartsWith: "keep"}, cfg)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown field":   "a:\n  anagram: tea\n",
		"negative length": "a:\n  minlen: -1\n",
		"bad list":        "a:\n  contains: {x: y}\n",
		"not a mapping":   "- a\n- b\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewLoader().Parse([]byte(src), "bad.yaml")
			require.Error(t, err)
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	t.Parallel()

	profiles, err := NewLoader().Parse(nil, "empty.yaml")
	require.NoError(t, err)
	require.Empty(t, profiles)
	assert.Equal(t, []string{".yaml", ".yml"}, NewLoader().Extensions())
}
