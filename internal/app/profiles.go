package app

import (
	"context"
	"fmt"

	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
)

// resolveQuery layers the configuration sources: defaults and environment,
// then the selected profile, then explicitly set flags.
func (a *App) resolveQuery(ctx context.Context) (config.Configuration, []*config.Profile, error) {
	logger := ctxlog.FromContext(ctx)
	query := a.config.Query.Clone()

	var profiles []*config.Profile
	if a.config.ProfilesPath != "" {
		var err error
		if profiles, err = a.loadProfiles(ctx); err != nil {
			return query, nil, err
		}
	}

	if name := a.config.ProfileName; name != "" {
		p := config.FindProfile(profiles, name)
		if p == nil {
			return query, nil, fmt.Errorf("profile %q not found in %s", name, a.config.ProfilesPath)
		}
		p.Overrides.Apply(&query)
		logger.Info("Profile applied.", "profile", p.Name, "source", p.Source)
	}

	a.config.Flags.Apply(&query)
	logger.Debug("Configuration resolved.", "word_list", query.WordListPath, "interactive", query.Interactive)
	return query, profiles, nil
}

func (a *App) loadProfiles(ctx context.Context) ([]*config.Profile, error) {
	profiles, err := config.LoadProfiles(ctx, a.config.ProfilesPath, a.profileLoaders...)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return profiles, nil
}
