package console

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
	"github.com/vk/wordgrid/internal/predicate"
)

const helpText = `Commands:
  start TEXT       words must start with TEXT
  end TEXT         words must end with TEXT
  min N            minimum word length
  max N            maximum word length
  contains A B     words must contain every listed substring
  multiple TEXT    words must contain TEXT more than once
  double [on|off]  words must contain a doubled letter
  exclude A B      words must contain none of the listed substrings
  reverse [on|off] longest words first
  wordlist PATH    load another word list (file or glob)
  profile [NAME]   apply a saved profile, or list profiles
  refresh          re-run the search
  show             print the current settings
  copy             copy the displayed grid to the clipboard
  help             print this help
  quit             leave
A constraint command without a value clears it.
`

// execute runs one input line. It reports whether the user asked to quit.
func (c *Console) execute(ctx context.Context, line string) (bool, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	name = strings.ToLower(name)
	ctxlog.FromContext(ctx).Debug("Console command received.", "command", name, "argument", arg)

	switch name {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprint(c.opts.Out, helpText)
		return false, nil
	case "refresh":
		return false, c.update(c.sess.Refresh(ctx))
	case "show":
		c.show()
		return false, nil
	case "copy":
		c.copy(ctx)
		return false, nil
	case "profile":
		return false, c.profile(ctx, arg)
	}

	field, ok := config.ParseField(name)
	if !ok {
		fmt.Fprintf(c.opts.Out, "Unknown command %q. Type help for a list of commands.\n", name)
		return false, nil
	}
	if arg == "" && (field == config.FieldDouble || field == config.FieldReversed) {
		arg = "on"
	}
	return false, c.update(c.sess.Apply(ctx, func(cfg *config.Configuration) error {
		return cfg.SetField(field, arg)
	}))
}

func (c *Console) show() {
	cfg := c.sess.Config()
	tw := tabwriter.NewWriter(c.opts.Out, 0, 0, 2, ' ', 0)
	for _, f := range config.Fields {
		fmt.Fprintf(tw, "%s\t%s\n", f, cfg.Value(f))
	}
	if c.active != "" {
		fmt.Fprintf(tw, "profile\t%s\n", c.active)
	}
	fmt.Fprintf(tw, "words loaded\t%d\n", c.sess.WordCount())
	tw.Flush()

	preds := predicate.Build(cfg)
	if len(preds) == 0 {
		fmt.Fprintln(c.opts.Out, "no active constraints")
		return
	}
	for _, p := range preds {
		fmt.Fprintf(c.opts.Out, "  %s\n", p)
	}
}

func (c *Console) copy(ctx context.Context) {
	text := c.sess.Last().Text
	if err := c.opts.Clipboard.WriteAll(text); err != nil {
		ctxlog.FromContext(ctx).Warn("Copy to clipboard failed.", "error", err)
		fmt.Fprintf(c.opts.Out, "warning: %v\n", err)
		return
	}
	fmt.Fprintf(c.opts.Out, "Copied %d words to the clipboard.\n", len(c.sess.Last().Words))
}

func (c *Console) profile(ctx context.Context, name string) error {
	if name == "" {
		c.listProfiles()
		return nil
	}
	p := config.FindProfile(c.profiles, name)
	if p == nil {
		fmt.Fprintf(c.opts.Out, "No profile named %q.\n", name)
		return nil
	}
	c.active = p.Name
	ctxlog.FromContext(ctx).Info("Profile applied.", "profile", p.Name, "source", p.Source)
	return c.applyProfile(ctx, p)
}

func (c *Console) applyProfile(ctx context.Context, p *config.Profile) error {
	return c.update(c.sess.Apply(ctx, func(cfg *config.Configuration) error {
		p.Overrides.Apply(cfg)
		return nil
	}))
}

func (c *Console) listProfiles() {
	if len(c.profiles) == 0 {
		fmt.Fprintln(c.opts.Out, "No profiles loaded.")
		return
	}
	sorted := slices.Clone(c.profiles)
	slices.SortFunc(sorted, func(a, b *config.Profile) int { return strings.Compare(a.Name, b.Name) })

	tw := tabwriter.NewWriter(c.opts.Out, 0, 0, 2, ' ', 0)
	for _, p := range sorted {
		marker := " "
		if p.Name == c.active {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", marker, p.Name, p.Description)
	}
	tw.Flush()
}
