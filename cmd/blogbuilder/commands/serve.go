package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogbuilder/internal/tasks"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Bind  string `short:"b" help:"Bind address (overrides serve.bind)"`
	Port  int    `short:"p" help:"Port (overrides serve.port)"`
	Debug bool   `help:"Pass --debug to the generator"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, runner, closeHooks, err := taskEnv(root)
	if err != nil {
		return err
	}
	defer closeHooks()

	// CLI overrides are applied before anything reads the config.
	if s.Bind != "" {
		cfg.Serve.Bind = s.Bind
	}
	if s.Port != 0 {
		cfg.Serve.Port = s.Port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return canceledOK(runner.Do(ctx, "serve", tasks.ProfileBase, func(ctx context.Context) error {
		return tasks.Serve(ctx, cfg, s.Debug)
	}))
}
