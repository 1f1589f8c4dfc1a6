package console

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
)

// watch starts watching the profile paths. It returns nil when there is
// nothing to watch or the watcher could not be set up.
func (c *Console) watch(ctx context.Context) *fsnotify.Watcher {
	if c.opts.Reload == nil || len(c.opts.Watch) == 0 {
		return nil
	}
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("Profile changes will not be picked up.", "error", err)
		return nil
	}
	for _, path := range c.opts.Watch {
		addTree(ctx, watcher, path)
	}
	logger.Debug("Watching profiles for changes.", "paths", watcher.WatchList())
	return watcher
}

// addTree watches path and, when it is a directory, every directory below
// it. Profiles are loaded recursively, so nested files must be watched too.
func addTree(ctx context.Context, watcher *fsnotify.Watcher, path string) {
	logger := ctxlog.FromContext(ctx)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		if err := watcher.Add(path); err != nil {
			logger.Warn("Cannot watch profile path.", "path", path, "error", err)
		}
		return
	}
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Cannot scan profile directory.", "path", p, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(p); err != nil {
			logger.Warn("Cannot watch profile path.", "path", p, "error", err)
		}
		return nil
	})
}

// watchNewDir extends the watch to a directory created under a watched one.
func watchNewDir(ctx context.Context, watcher *fsnotify.Watcher, ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) {
		return
	}
	if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
		addTree(ctx, watcher, ev.Name)
	}
}

// reloadProfiles re-reads the profiles and re-applies the active one. A
// broken profile file is reported and the previous profiles stay in use.
func (c *Console) reloadProfiles(ctx context.Context) error {
	profiles, err := c.opts.Reload(ctx)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Profile reload failed.", "error", err)
		fmt.Fprintf(c.opts.Out, "warning: profiles not reloaded: %v\n", err)
		return nil
	}
	c.profiles = profiles
	fmt.Fprintf(c.opts.Out, "Reloaded %d profiles.\n", len(profiles))

	if c.active == "" {
		return nil
	}
	p := config.FindProfile(profiles, c.active)
	if p == nil {
		fmt.Fprintf(c.opts.Out, "Profile %q is no longer defined; keeping the current settings.\n", c.active)
		return nil
	}
	return c.applyProfile(ctx, p)
}
