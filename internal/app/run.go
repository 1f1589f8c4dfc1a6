package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/console"
	"github.com/vk/wordgrid/internal/ctxlog"
	"github.com/vk/wordgrid/internal/predicate"
	"github.com/vk/wordgrid/internal/session"
	"github.com/vk/wordgrid/internal/termwidth"
)

// consoleWidthPercent is the share of the terminal the interactive grid uses.
const consoleWidthPercent = 70

// Run executes the main application logic in the mode the configuration
// selects: remote server, interactive console, or a single batch search.
func (a *App) Run(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	query, profiles, err := a.resolveQuery(ctx)
	if err != nil {
		return err
	}

	switch {
	case a.config.Listen != "":
		err = a.runRemote(ctx, query, profiles)
	case query.Interactive:
		err = a.runConsole(ctx, query, profiles)
	default:
		err = a.runBatch(ctx, query)
	}

	logger.Debug("App.Run method finished.", "error", err)
	return err
}

func (a *App) runBatch(ctx context.Context, query config.Configuration) error {
	width := a.config.Width
	if width == 0 {
		width = termwidth.Of(a.outW, termwidth.Default)
	}

	sess := session.New(a.words, query, session.FixedWidth(width))
	res, err := sess.RunBatch(ctx, a.outW)
	if errors.Is(err, predicate.ErrNoConstraints) {
		return fmt.Errorf("%w: set at least one of -start, -end, -min, -max, -contains, -multiple, -double or -exclude", err)
	}
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("🏁 Search finished.", "matches", len(res.Words), "width", width)
	return nil
}

func (a *App) runConsole(ctx context.Context, query config.Configuration, profiles []*config.Profile) error {
	width := func() int {
		return termwidth.Fraction(termwidth.Of(a.outW, termwidth.Default), consoleWidthPercent)
	}
	if a.config.Width > 0 {
		width = session.FixedWidth(a.config.Width)
	}

	opts := console.Options{
		In:            a.inR,
		Out:           a.outW,
		Clipboard:     a.clipboard,
		Profiles:      profiles,
		ActiveProfile: a.config.ProfileName,
	}
	if path := a.config.ProfilesPath; path != "" {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			path = filepath.Dir(path)
		}
		opts.Reload = a.loadProfiles
		opts.Watch = []string{path}
	}

	ctxlog.FromContext(ctx).Info("Interactive session started.", "word_list", query.WordListPath)
	return console.New(session.New(a.words, query, width), opts).Run(ctx)
}
