package session

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/predicate"
	"github.com/vk/wordgrid/internal/testutil"
	"github.com/vk/wordgrid/internal/wordlist"
)

// mapLoader serves word lists from memory and counts loads.
type mapLoader struct {
	lists map[string][]string
	loads int
}

func (l *mapLoader) Load(_ context.Context, source string) ([]string, error) {
	l.loads++
	words, ok := l.lists[source]
	if !ok {
		return nil, &wordlist.LoadError{Source: source, Err: errors.New("no such list")}
	}
	return words, nil
}

func newLoader() *mapLoader {
	return &mapLoader{lists: map[string][]string{
		"animals": {"cat", "dog", "bat", "rate", "late"},
		"fruit":   {"apple", "apply", "apt"},
	}}
}

func TestRunBatch_WritesGridAndFinishes(t *testing.T) {
	t.Parallel()
	ctx, logs := testutil.Context(t)

	s := New(newLoader(), config.Configuration{EndsWith: "at", WordListPath: "animals"}, FixedWidth(120))
	out := &bytes.Buffer{}

	res, err := s.RunBatch(ctx, out)

	require.NoError(t, err)
	require.Equal(t, []string{"bat", "cat"}, res.Words)
	require.Equal(t, "  bat  cat\n", out.String())
	require.Equal(t, StateDone, s.State())
	require.Contains(t, logs.String(), `predicate="ends_with(\"at\")"`)
}

func TestRunBatch_NoConstraintsIsFatal(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	s := New(newLoader(), config.Configuration{WordListPath: "animals"}, FixedWidth(120))
	out := &bytes.Buffer{}

	_, err := s.RunBatch(ctx, out)

	require.ErrorIs(t, err, predicate.ErrNoConstraints)
	require.Empty(t, out.String())
	require.Equal(t, StateLoaded, s.State())
}

func TestRunBatch_LoadErrorIsFatal(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	s := New(newLoader(), config.Configuration{Double: true, WordListPath: "missing"}, FixedWidth(120))
	_, err := s.RunBatch(ctx, &bytes.Buffer{})

	var loadErr *wordlist.LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, StateInit, s.State())
}

func TestInteractive_StartApplyQuit(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	loader := newLoader()
	s := New(loader, config.Configuration{WordListPath: "animals"}, FixedWidth(12))

	res, err := s.Start(ctx)
	require.NoError(t, err)
	require.Equal(t, StateAwaitingInput, s.State())
	require.Equal(t, NoticeNoConstraints, res.Notice)
	require.Empty(t, res.Text)

	res, err = s.Apply(ctx, func(c *config.Configuration) error {
		return c.SetField(config.FieldEndsWith, "ate")
	})
	require.NoError(t, err)
	require.Equal(t, []string{"late", "rate"}, res.Words)
	require.Equal(t, "  late  rate\n", res.Text)
	require.Equal(t, res, s.Last())
	require.Equal(t, StateAwaitingInput, s.State())
	require.Equal(t, 1, loader.loads, "field edits must not reload the word list")

	s.Quit(ctx)
	require.Equal(t, StateDone, s.State())
	_, err = s.Refresh(ctx)
	require.ErrorIs(t, err, ErrClosed)
	_, err = s.Apply(ctx, func(*config.Configuration) error { return nil })
	require.ErrorIs(t, err, ErrClosed)
}

func TestInteractive_MalformedNumberIsAWarning(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	s := New(newLoader(), config.Configuration{WordListPath: "fruit", StartsWith: "ap", MaxLength: 4}, FixedWidth(80))
	_, err := s.Start(ctx)
	require.NoError(t, err)

	res, err := s.Apply(ctx, func(c *config.Configuration) error {
		return c.SetField(config.FieldMaxLength, "four")
	})

	var numErr *config.NumericFieldError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, 0, s.Config().MaxLength)
	assert.Equal(t, []string{"apt", "apple", "apply"}, res.Words)
}

func TestInteractive_WordListSwitchAndFailedReload(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	s := New(newLoader(), config.Configuration{WordListPath: "animals", Contains: []string{"a"}}, FixedWidth(80))
	_, err := s.Start(ctx)
	require.NoError(t, err)

	res, err := s.Apply(ctx, func(c *config.Configuration) error {
		return c.SetField(config.FieldWordList, "fruit")
	})
	require.NoError(t, err)
	require.Equal(t, "fruit", s.Source())
	require.Equal(t, []string{"apt", "apple", "apply"}, res.Words)

	res, err = s.Apply(ctx, func(c *config.Configuration) error {
		return c.SetField(config.FieldWordList, "nowhere")
	})
	var loadErr *wordlist.LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, "fruit", s.Source())
	require.Equal(t, "fruit", s.Config().WordListPath)
	require.Equal(t, []string{"apt", "apple", "apply"}, res.Words)
	require.Equal(t, StateAwaitingInput, s.State())
}

func TestInteractive_StartWithoutWordList(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	s := New(newLoader(), config.Configuration{WordListPath: "missing", Double: true}, FixedWidth(80))
	res, err := s.Start(ctx)

	var loadErr *wordlist.LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, NoticeNoWordList, res.Notice)
	require.Equal(t, StateAwaitingInput, s.State())

	res, err = s.Apply(ctx, func(c *config.Configuration) error {
		return c.SetField(config.FieldWordList, "animals")
	})
	require.NoError(t, err)
	require.Empty(t, res.Words)
	require.Empty(t, res.Notice)
}

func TestRefresh_FollowsWidth(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	width := 5
	s := New(newLoader(), config.Configuration{WordListPath: "animals", EndsWith: "at"}, func() int { return width })
	res, err := s.Start(ctx)
	require.NoError(t, err)
	require.Equal(t, "  bat\n  cat\n", res.Text)

	width = 10
	res, err = s.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, "  bat  cat\n", res.Text)
}

func TestLoadWordList_KeepsPreviousListOnFailure(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	s := New(newLoader(), config.Configuration{StartsWith: "ap", WordListPath: "animals"}, FixedWidth(40))
	_, err := s.Start(ctx)
	require.NoError(t, err)

	res, err := s.LoadWordList(ctx, "fruit")
	require.NoError(t, err)
	assert.Equal(t, []string{"apt", "apple", "apply"}, res.Words)
	assert.Equal(t, "fruit", s.Source())

	res, err = s.LoadWordList(ctx, "missing")
	var loadErr *wordlist.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "fruit", s.Config().WordListPath)
	assert.Equal(t, []string{"apt", "apple", "apply"}, res.Words)
}
