// Package console implements the interactive text front end. It reads one
// command per line, applies it to a session.Session and prints the refreshed
// grid after every edit.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/wordgrid/internal/clipboard"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
	"github.com/vk/wordgrid/internal/predicate"
	"github.com/vk/wordgrid/internal/session"
)

const prompt = "> "

// Options configures a Console.
type Options struct {
	In        io.Reader
	Out       io.Writer
	Clipboard clipboard.Writer

	// Profiles are the profiles selectable with the profile command.
	Profiles []*config.Profile
	// ActiveProfile names the profile already applied to the session, if any.
	ActiveProfile string
	// Reload re-reads the profiles after a change to one of the Watch paths.
	Reload func(ctx context.Context) ([]*config.Profile, error)
	Watch  []string
}

// Console is a line-oriented interactive session.
type Console struct {
	sess *session.Session
	opts Options

	profiles []*config.Profile
	active   string
}

// New creates a console driving sess.
func New(sess *session.Session, opts Options) *Console {
	if opts.Clipboard == nil {
		opts.Clipboard = &clipboard.Memory{}
	}
	return &Console{
		sess:     sess,
		opts:     opts,
		profiles: opts.Profiles,
		active:   opts.ActiveProfile,
	}
}

// Run starts the session and processes commands until quit, end of input or
// context cancellation. Input lines, profile changes and cancellation are
// handled on the calling goroutine, one at a time.
func (c *Console) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	res, err := c.sess.Start(ctx)
	c.render(res, err)

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(c.opts.In, done)

	var fsEvents <-chan fsnotify.Event
	var fsErrors <-chan error
	watcher := c.watch(ctx)
	if watcher != nil {
		defer watcher.Close()
		fsEvents, fsErrors = watcher.Events, watcher.Errors
	}

	for {
		fmt.Fprint(c.opts.Out, prompt)
		select {
		case <-ctx.Done():
			logger.Debug("Console cancelled.")
			c.sess.Quit(ctx)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.opts.Out)
				c.sess.Quit(ctx)
				return <-readErr
			}
			quit, err := c.execute(ctx, line)
			if err != nil {
				return err
			}
			if quit {
				c.sess.Quit(ctx)
				return nil
			}
		case ev := <-fsEvents:
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				logger.Debug("Profile file changed.", "path", ev.Name, "op", ev.Op.String())
				watchNewDir(ctx, watcher, ev)
				if err := c.reloadProfiles(ctx); err != nil {
					return err
				}
			}
		case err := <-fsErrors:
			logger.Warn("Profile watcher error.", "error", err)
		}
	}
}

// readLines feeds r into a channel line by line. The channel is closed at
// end of input, after which the returned error channel yields the read error.
func readLines(r io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// render prints a refreshed result. Errors other than ErrClosed are shown as
// warnings; the session carries on.
func (c *Console) render(res session.Result, err error) {
	out := c.opts.Out
	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(out, "warning: %s\n", line)
		}
	}
	if res.Notice != "" {
		fmt.Fprintln(out, res.Notice)
	}
	if len(res.Predicates) > 0 {
		fmt.Fprintf(out, "constraints: %s\n", strings.Join(predicate.Strings(res.Predicates), ", "))
	}
	fmt.Fprint(out, res.Text)
	if res.Notice == "" {
		fmt.Fprintf(out, "%d matching words\n", len(res.Words))
	}
}

// update renders the outcome of a session operation and reports whether it
// was fatal.
func (c *Console) update(res session.Result, err error) error {
	if errors.Is(err, session.ErrClosed) {
		return err
	}
	c.render(res, err)
	return nil
}
