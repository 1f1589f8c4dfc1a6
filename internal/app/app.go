package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/vk/wordgrid/internal/clipboard"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
	"github.com/vk/wordgrid/internal/session"
	"github.com/vk/wordgrid/internal/wordlist"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	inR    io.Reader
	logger *slog.Logger
	config *Config

	words          session.WordLoader
	profileLoaders []config.Loader
	clipboard      clipboard.Writer

	httpServer *http.Server
	onListen   func(addr string)
}

// Option customises an App.
type Option func(*App)

// WithInput sets the reader interactive commands are read from.
func WithInput(r io.Reader) Option {
	return func(a *App) { a.inR = r }
}

// WithWordLoader replaces the file based word-list loader.
func WithWordLoader(l session.WordLoader) Option {
	return func(a *App) { a.words = l }
}

// WithProfileLoaders registers the loaders used for profile files.
func WithProfileLoaders(loaders ...config.Loader) Option {
	return func(a *App) { a.profileLoaders = append(a.profileLoaders, loaders...) }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(w clipboard.Writer) Option {
	return func(a *App) { a.clipboard = w }
}

// WithListenNotify registers fn to be called with the bound address once the
// remote server accepts connections.
func WithListenNotify(fn func(addr string)) Option {
	return func(a *App) { a.onListen = fn }
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:      outW,
		inR:       os.Stdin,
		logger:    logger,
		config:    cfg,
		words:     wordlist.NewFileLoader(),
		clipboard: clipboard.System{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// withLogger attaches the app logger to ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
