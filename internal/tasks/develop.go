package tasks

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/git"
	"git.home.luguber.info/inful/blogbuilder/internal/pelican"
)

// Develop prepares the working environment: the generator's Python
// dependencies first, then the theme and plugin checkouts. A dependency
// resolution failure aborts before any checkout is touched.
func Develop(ctx context.Context, cfg *config.Config) error {
	if err := pelican.InstallDeps(ctx, cfg); err != nil {
		return err
	}

	deps := checkoutDependencies(cfg)
	if len(deps) == 0 {
		slog.Info("No theme or plugin repositories configured")
		return nil
	}
	return git.NewClient().EnsureAll(ctx, deps)
}

// checkoutDependencies maps the configured theme and plugin repositories to
// git dependencies with their conventional checkout directories.
func checkoutDependencies(cfg *config.Config) []git.Dependency {
	var deps []git.Dependency
	if cfg.Theme.Repo != "" {
		deps = append(deps, git.Dependency{
			Name:   "theme",
			URL:    cfg.Theme.Repo,
			Branch: cfg.Theme.Branch,
			Dir:    cfg.ThemeCheckoutDir(),
		})
	}
	if cfg.Plugins.Repo != "" {
		deps = append(deps, git.Dependency{
			Name:   "plugins",
			URL:    cfg.Plugins.Repo,
			Branch: cfg.Plugins.Branch,
			Dir:    cfg.PluginsDir(),
		})
	}
	return deps
}
