// Package session drives the word grid pipeline. A Session owns the loaded
// word list and the current configuration, and re-runs the full pipeline on
// every change. It is the only stateful component; batch and interactive
// front ends both go through it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
	"github.com/vk/wordgrid/internal/predicate"
)

// ErrClosed is returned by operations on a session that has quit.
var ErrClosed = errors.New("session is closed")

// Notices shown in interactive mode instead of failing the session.
const (
	NoticeNoConstraints = "No constraints set. Add at least one constraint to see matching words."
	NoticeNoWordList    = "No word list loaded. Use the wordlist command to choose one."
)

// WordLoader resolves a word-list source into words.
type WordLoader interface {
	Load(ctx context.Context, source string) ([]string, error)
}

// WidthFunc reports the line width to format for. It is called on every
// evaluation so the display can follow terminal resizes.
type WidthFunc func() int

// FixedWidth returns a WidthFunc that always reports w.
func FixedWidth(w int) WidthFunc {
	return func() int { return w }
}

// Session is not safe for concurrent use.
type Session struct {
	loader WordLoader
	width  WidthFunc

	cfg    config.Configuration
	words  []string
	source string // source the current words were loaded from
	state  State
	last   Result
}

// New creates a session in the Init state.
func New(loader WordLoader, cfg config.Configuration, width WidthFunc) *Session {
	return &Session{
		loader: loader,
		width:  width,
		cfg:    cfg.Clone(),
		state:  StateInit,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Config returns a copy of the current configuration.
func (s *Session) Config() config.Configuration { return s.cfg.Clone() }

// WordCount returns the size of the loaded word list.
func (s *Session) WordCount() int { return len(s.words) }

// Source returns the source the current word list was loaded from.
func (s *Session) Source() string { return s.source }

// Last returns the most recent result.
func (s *Session) Last() Result { return s.last }

// Load reads the configured word list. On failure the previous list, if
// any, is kept.
func (s *Session) Load(ctx context.Context) error {
	if s.state == StateDone {
		return ErrClosed
	}
	return s.loadWords(ctx, s.cfg.WordListPath)
}

func (s *Session) loadWords(ctx context.Context, source string) error {
	logger := ctxlog.FromContext(ctx)
	words, err := s.loader.Load(ctx, source)
	if err != nil {
		logger.Warn("Word list could not be loaded.", "source", source, "error", err)
		return err
	}
	s.words = words
	s.source = source
	if s.state == StateInit {
		s.transition(ctx, StateLoaded)
	}
	logger.Info("Word list loaded.", "source", source, "words", len(words))
	return nil
}

// LoadWordList switches the session to a new word-list source and
// refreshes. On failure the previous list and source are kept and the
// session stays usable.
func (s *Session) LoadWordList(ctx context.Context, source string) (Result, error) {
	return s.Apply(ctx, func(c *config.Configuration) error {
		c.WordListPath = source
		return nil
	})
}

// RunBatch performs one linear pass: load, filter, render, done. Load
// failures and an empty constraint set are returned as errors.
func (s *Session) RunBatch(ctx context.Context, w io.Writer) (Result, error) {
	logger := ctxlog.FromContext(ctx)
	if err := s.Load(ctx); err != nil {
		return Result{}, err
	}

	res, err := Evaluate(s.words, s.cfg, s.width())
	if err != nil {
		return Result{}, err
	}
	for _, p := range res.Predicates {
		logger.Info("Active constraint.", "predicate", p.String())
	}
	s.last = res
	s.transition(ctx, StateFiltered)
	logger.Debug("Words filtered.", "matches", len(res.Words), "of", len(s.words))

	if _, err := io.WriteString(w, res.Text); err != nil {
		return res, fmt.Errorf("failed to write results: %w", err)
	}
	s.transition(ctx, StateRendered)
	s.transition(ctx, StateDone)
	return res, nil
}

// Start enters interactive mode: it loads the word list and renders the
// first result. A load failure is returned but leaves the session usable, so
// the user can pick another source.
func (s *Session) Start(ctx context.Context) (Result, error) {
	if s.state == StateDone {
		return Result{}, ErrClosed
	}
	loadErr := s.Load(ctx)
	s.transition(ctx, StateAwaitingInput)
	res, err := s.Refresh(ctx)
	if err != nil {
		return res, err
	}
	return res, loadErr
}

// Refresh recomputes the result from scratch for the current configuration.
// A missing constraint or word list produces an empty result with a Notice
// rather than an error.
func (s *Session) Refresh(ctx context.Context) (Result, error) {
	if s.state == StateDone {
		return Result{}, ErrClosed
	}
	logger := ctxlog.FromContext(ctx)
	s.transition(ctx, StateRefreshing)
	defer s.transition(ctx, StateAwaitingInput)

	width := s.width()
	if s.words == nil {
		s.last = Result{Width: width, Notice: NoticeNoWordList}
		return s.last, nil
	}

	res, err := Evaluate(s.words, s.cfg, width)
	switch {
	case errors.Is(err, predicate.ErrNoConstraints):
		res.Notice = NoticeNoConstraints
	case err != nil:
		return s.last, err
	}
	logger.Debug("Session refreshed.", "constraints", len(res.Predicates), "matches", len(res.Words), "width", width)
	s.last = res
	return res, nil
}

// Apply edits the configuration and refreshes. The edit always receives a
// copy; predicates are rebuilt from the new configuration rather than
// changed in place. A non-nil error from edit, such as a
// config.NumericFieldError, is returned alongside the refreshed result as a
// warning. If the edit changes the word-list source the new list is loaded;
// when that fails the previous list and source are kept and the load error
// is returned.
func (s *Session) Apply(ctx context.Context, edit func(*config.Configuration) error) (Result, error) {
	if s.state == StateDone {
		return Result{}, ErrClosed
	}
	next := s.cfg.Clone()
	editErr := edit(&next)

	var loadErr error
	if next.WordListPath != s.cfg.WordListPath || s.words == nil {
		if loadErr = s.loadWords(ctx, next.WordListPath); loadErr != nil && s.words != nil {
			next.WordListPath = s.source
		}
	}
	s.cfg = next

	res, err := s.Refresh(ctx)
	if err != nil {
		return res, err
	}
	return res, errors.Join(editErr, loadErr)
}

// Quit ends the session. Every later operation returns ErrClosed.
func (s *Session) Quit(ctx context.Context) {
	s.transition(ctx, StateDone)
}

func (s *Session) transition(ctx context.Context, next State) {
	if s.state == next {
		return
	}
	ctxlog.FromContext(ctx).Debug("Session state changed.", "from", s.state, "to", next)
	s.state = next
}
