package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogbuilder/internal/tasks"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Debug bool `help:"Pass --debug to the generator"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, runner, closeHooks, err := taskEnv(root)
	if err != nil {
		return err
	}
	defer closeHooks()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return canceledOK(runner.Do(ctx, "build", tasks.ProfileBase, func(ctx context.Context) error {
		return tasks.Build(ctx, cfg, b.Debug)
	}))
}

// RegenerateCmd implements the 'regenerate' command.
type RegenerateCmd struct {
	Debug bool `help:"Pass --debug to the generator"`
}

func (r *RegenerateCmd) Run(_ *Global, root *CLI) error {
	cfg, runner, closeHooks, err := taskEnv(root)
	if err != nil {
		return err
	}
	defer closeHooks()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return canceledOK(runner.Do(ctx, "regenerate", tasks.ProfileBase, func(ctx context.Context) error {
		return tasks.Regenerate(ctx, cfg, r.Debug)
	}))
}
