package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogbuilder/internal/preview"
)

// PreviewCmd implements the 'preview' command. It serves whatever the last
// build left in the output directory; run 'build' or 'watch' to refresh it.
type PreviewCmd struct {
	Host       string `help:"Bind host (overrides preview.host)"`
	Port       int    `short:"p" help:"Port (overrides preview.port)"`
	LiveReload bool   `name:"live-reload" help:"Enable live reload even when the config leaves it off"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, runner, closeHooks, err := taskEnv(root)
	if err != nil {
		return err
	}
	defer closeHooks()

	if p.Host != "" {
		cfg.Preview.Host = p.Host
	}
	if p.Port != 0 {
		cfg.Preview.Port = p.Port
	}
	if p.LiveReload {
		cfg.Preview.LiveReload = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return canceledOK(runner.Do(ctx, "preview", "", func(ctx context.Context) error {
		return preview.NewServer(cfg).Serve(ctx)
	}))
}
