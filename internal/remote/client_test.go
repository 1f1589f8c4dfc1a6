package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/session"
	"github.com/vk/wordgrid/internal/testutil"
)

type staticLoader map[string][]string

func (l staticLoader) Load(_ context.Context, source string) ([]string, error) {
	if words, ok := l[source]; ok {
		return words, nil
	}
	return nil, errors.New("no such list")
}

var words = staticLoader{"words": {"apple", "apply", "apt", "banana", "cherry"}}

func newTestClient(profiles ...*config.Profile) *client {
	return newClient(words, config.Configuration{WordListPath: "words"}, profiles, DefaultWidth, newMetrics(nil))
}

func TestClient_StartWithoutConstraints(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	c := newTestClient()
	res := c.start(ctx)

	assert.Equal(t, c.id, res.Session)
	assert.Equal(t, session.NoticeNoConstraints, res.Notice)
	assert.Empty(t, res.Lines)
	assert.Empty(t, res.Error)
}

func TestClient_ConfigureAppliesValidFieldsAndReportsTheRest(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	c := newTestClient()
	c.start(ctx)

	res := c.configure(ctx, ConfigurePayload{
		Width: 14,
		Fields: map[string]any{
			"start":    "ap",
			"max":      "four",
			"wordlist": "/etc/passwd",
			"anagram":  "tea",
		},
	})

	assert.Equal(t, []string{"apt", "apple", "apply"}, res.Words)
	assert.Equal(t, []string{"    apt  apple", "  apply"}, res.Lines)
	assert.Equal(t, []string{`starts_with("ap")`}, res.Predicates)
	assert.Contains(t, res.Error, `unknown field "anagram"`)
	assert.Contains(t, res.Error, errWordListLocked.Error())
	assert.Contains(t, res.Error, `maxlen: "four"`)
	assert.Equal(t, "words", c.sess.Config().WordListPath)
}

func TestClient_ConfigureJSONValues(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	c := newTestClient()
	c.start(ctx)

	res := c.configure(ctx, ConfigurePayload{Fields: map[string]any{
		"double":   true,
		"reversed": true,
		"min":      float64(6),
		"contains": []any{"e", "r"},
	}})

	require.Empty(t, res.Error)
	assert.Equal(t, []string{"cherry"}, res.Words)
	cfg := c.sess.Config()
	assert.Equal(t, 6, cfg.MinLength)
	assert.Equal(t, []string{"e", "r"}, cfg.Contains)
}

func TestClient_ProfileKeepsServerWordList(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	start, list := "ban", "elsewhere"
	c := newTestClient(&config.Profile{Name: "b", Overrides: config.Overrides{StartsWith: &start, WordListPath: &list}})
	c.start(ctx)

	res := c.configure(ctx, ConfigurePayload{Profile: "b"})
	require.Empty(t, res.Error)
	assert.Equal(t, []string{"banana"}, res.Words)
	assert.Equal(t, "words", c.sess.Config().WordListPath)

	res = c.configure(ctx, ConfigurePayload{Profile: "missing"})
	assert.Contains(t, res.Error, `unknown profile "missing"`)
}

func TestClient_RefreshCopyClose(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	c := newTestClient()
	c.start(ctx)
	c.configure(ctx, ConfigurePayload{Fields: map[string]any{"end": "ly"}})

	res := c.refresh(ctx)
	assert.Equal(t, []string{"apply"}, res.Words)
	assert.Equal(t, CopiedPayload{Session: c.id, Text: "  apply\n"}, c.copy())

	c.close(ctx)
	res = c.refresh(ctx)
	assert.Equal(t, session.ErrClosed.Error(), res.Error)
}

func TestDecodeConfigure(t *testing.T) {
	t.Parallel()

	p, err := decodeConfigure([]any{map[string]any{
		"fields":  map[string]any{"start": "qu"},
		"width":   float64(40),
		"profile": "x",
	}})
	require.NoError(t, err)
	assert.Equal(t, ConfigurePayload{Fields: map[string]any{"start": "qu"}, Width: 40, Profile: "x"}, p)

	p, err = decodeConfigure(nil)
	require.NoError(t, err)
	assert.Equal(t, ConfigurePayload{}, p)

	_, err = decodeConfigure([]any{"not an object"})
	require.Error(t, err)
}

func TestFieldString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", fieldString(nil))
	assert.Equal(t, "off", fieldString(false))
	assert.Equal(t, "12", fieldString(float64(12)))
	assert.Equal(t, "1.5", fieldString(1.5))
	assert.Equal(t, "a b", fieldString([]any{"a", "b"}))
}
