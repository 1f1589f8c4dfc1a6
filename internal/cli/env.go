package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DefaultWordList is the word list used when neither WORDGRID_WORDLIST nor
// -wordlist is given.
const DefaultWordList = "/usr/share/dict/words"

// envDefaults are the environment variables that seed flag defaults.
type envDefaults struct {
	WordList  string `env:"WORDGRID_WORDLIST"`
	Width     int    `env:"WORDGRID_WIDTH"`
	Profiles  string `env:"WORDGRID_PROFILES"`
	Profile   string `env:"WORDGRID_PROFILE"`
	Listen    string `env:"WORDGRID_LISTEN"`
	LogFormat string `env:"WORDGRID_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"WORDGRID_LOG_LEVEL" envDefault:"info"`
}

func loadEnv(environ map[string]string) (envDefaults, error) {
	var d envDefaults
	if environ == nil {
		environ = map[string]string{}
	}
	if err := env.ParseWithOptions(&d, env.Options{Environment: environ}); err != nil {
		return d, fmt.Errorf("invalid environment: %w", err)
	}
	if d.WordList == "" {
		d.WordList = DefaultWordList
	}
	return d, nil
}
