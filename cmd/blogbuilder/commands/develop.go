package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogbuilder/internal/tasks"
)

// DevelopCmd implements the 'develop' command.
type DevelopCmd struct{}

func (d *DevelopCmd) Run(_ *Global, root *CLI) error {
	cfg, runner, closeHooks, err := taskEnv(root)
	if err != nil {
		return err
	}
	defer closeHooks()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return canceledOK(runner.Do(ctx, "develop", "", func(ctx context.Context) error {
		return tasks.Develop(ctx, cfg)
	}))
}
