package app

import (
	"errors"

	"github.com/vk/wordgrid/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Query holds built-in and environment defaults.
	Query config.Configuration
	// Flags holds the constraints set explicitly on the command line. They
	// are applied after any profile.
	Flags config.Overrides

	ProfilesPath string // hcl or yaml file, or a directory of them
	ProfileName  string

	Width  int    // 0 means detect
	Listen string // address for the remote session server

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Width < 0 {
		return nil, errors.New("width must not be negative")
	}
	if cfg.ProfileName != "" && cfg.ProfilesPath == "" {
		return nil, errors.New("a profile name requires a profiles path")
	}
	if cfg.Listen != "" && cfg.Query.Interactive {
		return nil, errors.New("listen and interactive cannot be combined")
	}
	if (cfg.Flags.MinLength != nil && *cfg.Flags.MinLength < 0) || (cfg.Flags.MaxLength != nil && *cfg.Flags.MaxLength < 0) {
		return nil, errors.New("word lengths must not be negative")
	}
	return &cfg, nil
}
