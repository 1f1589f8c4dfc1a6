package remote

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
	"github.com/vk/wordgrid/internal/session"
)

// errWordListLocked is reported when a client tries to pick its own word
// list; remote clients only search the list the server was started with.
var errWordListLocked = errors.New("word_list_path cannot be changed remotely")

// client is the server side of one connection. All session access is
// serialised by mu.
type client struct {
	id       string
	metrics  *metrics
	profiles []*config.Profile

	mu    sync.Mutex
	sess  *session.Session
	width int
}

func newClient(loader session.WordLoader, base config.Configuration, profiles []*config.Profile, width int, m *metrics) *client {
	c := &client{
		id:       uuid.NewString(),
		metrics:  m,
		profiles: profiles,
		width:    width,
	}
	c.sess = session.New(loader, base, func() int { return c.width })
	return c
}

func (c *client) start(ctx context.Context) ResultPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observe(ctx, c.sess.Start)
}

func (c *client) refresh(ctx context.Context) ResultPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observe(ctx, c.sess.Refresh)
}

// configure applies a client edit. Bad fields are reported in the payload's
// Error while every valid field still takes effect.
func (c *client) configure(ctx context.Context, p ConfigurePayload) ResultPayload {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p.Width > 0 {
		c.width = p.Width
	}
	return c.observe(ctx, func(ctx context.Context) (session.Result, error) {
		return c.sess.Apply(ctx, func(cfg *config.Configuration) error {
			return c.edit(cfg, p)
		})
	})
}

func (c *client) edit(cfg *config.Configuration, p ConfigurePayload) error {
	var errs []error
	if p.Profile != "" {
		if profile := config.FindProfile(c.profiles, p.Profile); profile != nil {
			wordList := cfg.WordListPath
			profile.Overrides.Apply(cfg)
			cfg.WordListPath = wordList
		} else {
			errs = append(errs, fmt.Errorf("unknown profile %q", p.Profile))
		}
	}

	names := make([]string, 0, len(p.Fields))
	for name := range p.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field, ok := config.ParseField(name)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("unknown field %q", name))
		case field == config.FieldWordList:
			errs = append(errs, errWordListLocked)
		default:
			errs = append(errs, cfg.SetField(field, fieldString(p.Fields[name])))
		}
	}
	return errors.Join(errs...)
}

func (c *client) copy() CopiedPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CopiedPayload{Session: c.id, Text: c.sess.Last().Text}
}

func (c *client) close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess.Quit(ctx)
}

func (c *client) observe(ctx context.Context, op func(context.Context) (session.Result, error)) ResultPayload {
	start := time.Now()
	res, err := op(ctx)
	c.metrics.refresh.Observe(time.Since(start).Seconds())
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Session update reported a problem.", "session", c.id, "error", err)
	}
	return newResultPayload(c.id, res, err)
}
