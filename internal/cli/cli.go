package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/vk/wordgrid/internal/app"
	"github.com/vk/wordgrid/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// listValue is a repeatable flag; every occurrence may hold several comma
// separated items.
type listValue struct {
	items *[]string
}

func (l listValue) String() string {
	if l.items == nil {
		return ""
	}
	return strings.Join(*l.items, ",")
}

func (l listValue) Set(v string) error {
	*l.items = append(*l.items, config.SplitList(v)...)
	return nil
}

// Parse processes command-line arguments using the process environment for
// defaults. It returns a populated Config, a boolean indicating if the
// program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	return ParseEnv(args, env.ToMap(os.Environ()), output)
}

// ParseEnv is Parse with an explicit environment.
func ParseEnv(args []string, environ map[string]string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	defaults, err := loadEnv(environ)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("wordgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Wordgrid - find words matching a set of constraints and print them in a grid.

Usage:
  wordgrid [options] [SUBSTRING...]

Arguments:
  SUBSTRING
    Extra substrings every word must contain (same as -contains).

Environment:
  WORDGRID_WORDLIST, WORDGRID_WIDTH, WORDGRID_PROFILES, WORDGRID_PROFILE,
  WORDGRID_LISTEN, WORDGRID_LOG_FORMAT, WORDGRID_LOG_LEVEL

Options:
`)
		flagSet.PrintDefaults()
	}

	var q config.Configuration
	contains := listValue{items: &q.Contains}
	exclude := listValue{items: &q.NotContain}

	flagSet.StringVar(&q.StartsWith, "s", "", "Words must start with this text (shorthand).")
	flagSet.StringVar(&q.StartsWith, "start", "", "Words must start with this text.")
	flagSet.StringVar(&q.EndsWith, "e", "", "Words must end with this text (shorthand).")
	flagSet.StringVar(&q.EndsWith, "end", "", "Words must end with this text.")
	flagSet.IntVar(&q.MinLength, "min", 0, "Minimum word length. 0 means no minimum.")
	flagSet.IntVar(&q.MaxLength, "m", 0, "Maximum word length (shorthand).")
	flagSet.IntVar(&q.MaxLength, "max", 0, "Maximum word length. 0 means no maximum.")
	flagSet.Var(contains, "c", "Substrings every word must contain (shorthand).")
	flagSet.Var(contains, "contains", "Substrings every word must contain. Repeatable and comma separated.")
	flagSet.StringVar(&q.Multiple, "cm", "", "Text that must occur more than once (shorthand).")
	flagSet.StringVar(&q.Multiple, "multiple", "", "Text that must occur more than once.")
	flagSet.BoolVar(&q.Double, "d", false, "Words must contain a doubled letter (shorthand).")
	flagSet.BoolVar(&q.Double, "double", false, "Words must contain a doubled letter.")
	flagSet.Var(exclude, "x", "Substrings no word may contain (shorthand).")
	flagSet.Var(exclude, "exclude", "Substrings no word may contain. Repeatable and comma separated.")
	flagSet.BoolVar(&q.Reversed, "r", false, "Longest words first (shorthand).")
	flagSet.BoolVar(&q.Reversed, "reverse", false, "Longest words first.")
	flagSet.StringVar(&q.WordListPath, "wordlist", defaults.WordList, "Word list file or glob pattern.")

	interactive := flagSet.Bool("i", false, "Start an interactive session (shorthand).")
	flagSet.BoolVar(interactive, "interactive", false, "Start an interactive session.")
	widthFlag := flagSet.Int("width", defaults.Width, "Line width of the grid. 0 detects the terminal width.")
	listenFlag := flagSet.String("listen", defaults.Listen, "Serve remote interactive sessions on this address, e.g. :8080.")
	profilesFlag := flagSet.String("profiles", defaults.Profiles, "Profile file (.hcl, .yaml) or directory of profile files.")
	profileFlag := flagSet.String("profile", defaults.Profile, "Name of the profile to apply.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	positional, err := parseInterspersed(flagSet, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// Visit sees every flag set across all parse passes.
	explicit := make(map[config.Field]bool)
	flagSet.Visit(func(f *flag.Flag) {
		if field, ok := config.ParseField(f.Name); ok {
			explicit[field] = true
		}
	})
	if len(positional) > 0 {
		for _, arg := range positional {
			q.Contains = append(q.Contains, config.SplitList(arg)...)
		}
		explicit[config.FieldContains] = true
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		Query: config.Configuration{
			WordListPath: defaults.WordList,
			Interactive:  *interactive,
		},
		Flags:        overrides(q, explicit),
		ProfilesPath: *profilesFlag,
		ProfileName:  *profileFlag,
		Width:        *widthFlag,
		Listen:       *listenFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

// parseInterspersed parses args allowing flags after positional arguments,
// e.g. "-c ab cd -s x". A literal "--" ends flag parsing; everything after
// it is positional.
func parseInterspersed(flagSet *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := flagSet.Parse(args); err != nil {
			return nil, err
		}
		rest := flagSet.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// overrides keeps the values of the explicitly set fields of q.
func overrides(q config.Configuration, explicit map[config.Field]bool) config.Overrides {
	var o config.Overrides
	for field := range explicit {
		switch field {
		case config.FieldStartsWith:
			o.StartsWith = &q.StartsWith
		case config.FieldEndsWith:
			o.EndsWith = &q.EndsWith
		case config.FieldMinLength:
			o.MinLength = &q.MinLength
		case config.FieldMaxLength:
			o.MaxLength = &q.MaxLength
		case config.FieldContains:
			o.Contains = append([]string{}, q.Contains...)
		case config.FieldMultiple:
			o.Multiple = &q.Multiple
		case config.FieldDouble:
			o.Double = &q.Double
		case config.FieldNotContain:
			o.NotContain = append([]string{}, q.NotContain...)
		case config.FieldReversed:
			o.Reversed = &q.Reversed
		case config.FieldWordList:
			o.WordListPath = &q.WordListPath
		}
	}
	return o
}
