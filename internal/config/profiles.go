package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/wordgrid/internal/ctxlog"
	"github.com/vk/wordgrid/internal/fsutil"
)

// LoadProfiles reads every profile found at path. A file is handed to the
// loader registered for its extension; a directory is scanned recursively
// for files any loader understands. Profile names must be unique across all
// files.
func LoadProfiles(ctx context.Context, path string, loaders ...Loader) ([]*Profile, error) {
	logger := ctxlog.FromContext(ctx)

	byExt := make(map[string]Loader)
	var exts []string
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			byExt[ext] = l
			exts = append(exts, ext)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		if files, err = fsutil.FindFilesByExtension(path, exts...); err != nil {
			return nil, fmt.Errorf("failed to scan profile directory %s: %w", path, err)
		}
	}

	var profiles []*Profile
	seen := make(map[string]string)
	for _, file := range files {
		loader, ok := byExt[strings.ToLower(filepath.Ext(file))]
		if !ok {
			return nil, fmt.Errorf("unsupported profile file %s: expected one of %s", file, strings.Join(exts, ", "))
		}
		loaded, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		for _, p := range loaded {
			if prev, dup := seen[p.Name]; dup {
				return nil, fmt.Errorf("profile %q defined in both %s and %s", p.Name, prev, file)
			}
			seen[p.Name] = file
			profiles = append(profiles, p)
		}
	}

	logger.Debug("Profiles loaded.", "path", path, "files", len(files), "profiles", len(profiles))
	return profiles, nil
}
