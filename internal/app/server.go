package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
	"github.com/vk/wordgrid/internal/remote"
)

const shutdownTimeout = 5 * time.Second

// healthHandler reports that the server is up.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// runRemote serves interactive sessions over socket.io until ctx is done.
func (a *App) runRemote(ctx context.Context, query config.Configuration, profiles []*config.Profile) error {
	logger := ctxlog.FromContext(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sessions := remote.NewServer(logger, remote.Options{
		Loader:     a.words,
		Base:       query,
		Profiles:   profiles,
		Width:      a.config.Width,
		Registerer: reg,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/socket.io/", sessions.Handler())

	ln, err := net.Listen("tcp", a.config.Listen)
	if err != nil {
		sessions.Close()
		return fmt.Errorf("failed to listen on %s: %w", a.config.Listen, err)
	}
	a.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("🌐 Remote session server starting", "address", fmt.Sprintf("http://%s", ln.Addr()))
		// Serve returns ErrServerClosed on graceful shutdown.
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	if a.onListen != nil {
		a.onListen(ln.Addr().String())
	}

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		sessions.Close()
		return fmt.Errorf("remote server failed: %w", err)
	}

	sessions.Close()
	return a.closeServer(ctx)
}

func (a *App) closeServer(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if a.httpServer == nil {
		logger.Debug("Remote server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("🌐 Shutting down remote session server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Remote server shutdown failed", "error", err)
		return err
	}
	logger.Debug("Remote server shut down gracefully.")
	return nil
}
