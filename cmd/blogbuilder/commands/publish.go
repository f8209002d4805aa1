package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogbuilder/internal/tasks"
)

// PublishCmd implements the 'publish' command.
type PublishCmd struct {
	SkipSync      bool `name:"skip-sync" help:"Build the publish profile without mirroring to the remote"`
	IncludeDrafts bool `name:"include-drafts" help:"Publish content without an explicit status too"`
	DryRun        bool `name:"dry-run" help:"Report what rsync would transfer without changing the remote"`
	Debug         bool `help:"Pass --debug to the generator"`
}

func (p *PublishCmd) Run(_ *Global, root *CLI) error {
	cfg, runner, closeHooks, err := taskEnv(root)
	if err != nil {
		return err
	}
	defer closeHooks()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return canceledOK(runner.Do(ctx, "publish", tasks.ProfilePublish, func(ctx context.Context) error {
		return tasks.NewPublisher(cfg).Run(ctx, tasks.PublishOptions{
			SkipSync:      p.SkipSync,
			IncludeDrafts: p.IncludeDrafts,
			DryRun:        p.DryRun,
			Debug:         p.Debug,
		})
	}))
}
