package tasks

import (
	"context"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/pelican"
)

// Build renders the base profile and runs one site generation. A parse or
// template failure in any content item aborts with the generator's own
// diagnostics on the terminal.
func Build(ctx context.Context, cfg *config.Config, debug bool) error {
	settingsPath, cleanup, err := writeBaseProfile(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return pelican.NewRunner(cfg).Build(ctx, settingsPath, debug)
}

// Regenerate runs the generator in autoreload mode (rebuild on content
// change, no HTTP) until ctx is canceled.
func Regenerate(ctx context.Context, cfg *config.Config, debug bool) error {
	settingsPath, cleanup, err := writeBaseProfile(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return pelican.NewRunner(cfg).Watch(ctx, settingsPath, debug)
}

// Serve runs the generator's own autoreload+listen mode on the configured
// bind address until ctx is canceled.
func Serve(ctx context.Context, cfg *config.Config, debug bool) error {
	settingsPath, cleanup, err := writeBaseProfile(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return pelican.NewRunner(cfg).Serve(ctx, settingsPath, cfg.Serve.Bind, cfg.Serve.Port, debug)
}
