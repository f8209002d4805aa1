package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/history"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/notify"
	"git.home.luguber.info/inful/blogbuilder/internal/tasks"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"blog.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init       InitCmd       `cmd:"" help:"Write a starter configuration file"`
	Develop    DevelopCmd    `cmd:"" help:"Install generator dependencies and fetch theme/plugin repositories"`
	New        NewCmd        `cmd:"" help:"Scaffold a new draft post or page"`
	Build      BuildCmd      `cmd:"" help:"Generate the site once with the development settings"`
	Regenerate RegenerateCmd `cmd:"" help:"Rebuild on content changes without serving"`
	Serve      ServeCmd      `cmd:"" help:"Run the generator's own watch-and-serve mode"`
	Preview    PreviewCmd    `cmd:"" help:"Serve the last build output over HTTP"`
	Watch      WatchCmd      `cmd:"" help:"Rebuild on changes and serve the output as one unit"`
	Publish    PublishCmd    `cmd:"" help:"Build the publish profile and mirror it to the deploy target"`
	Lint       LintCmd       `cmd:"" help:"Check content files and URL templates for problems"`
	History    HistoryCmd    `cmd:"" help:"Show recent task runs"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// taskEnv loads the configuration and assembles the instrumented task runner.
// The returned cleanup closes the reporting hooks.
func taskEnv(root *CLI) (*config.Config, *tasks.Runner, func(), error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, nil, nil, err
	}
	runner, cleanup := newRunner(cfg, nil)
	return cfg, runner, cleanup, nil
}

// newRunner builds the task runner with its reporting hooks. Reporting is
// best effort: a hook that cannot be opened is logged and dropped so the
// task itself still runs. rec may be nil; the watch command passes its
// Prometheus recorder so task metrics and rebuild counts share a registry.
func newRunner(cfg *config.Config, rec metrics.Recorder) (*tasks.Runner, func()) {
	var hooks tasks.Hooks
	var closers []func()

	if !cfg.History.Disabled {
		store, err := history.Open(cfg.AbsPath(cfg.History.Path))
		if err != nil {
			slog.Warn("Run history unavailable", logfields.Error(err))
		} else {
			hooks.History = store
			closers = append(closers, func() {
				if err := store.Close(); err != nil {
					slog.Warn("Failed to close run history", logfields.Error(err))
				}
			})
		}
	}

	if cfg.Notify.Enabled {
		pub, err := notify.Connect(cfg)
		if err != nil {
			slog.Warn("Notify channel unavailable, task events will not be published", logfields.Error(err))
		} else {
			hooks.Notifier = pub
			closers = append(closers, pub.Close)
		}
	}

	hooks.Metrics = rec

	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}
	return tasks.NewRunner(hooks), cleanup
}

// canceledOK maps context cancellation to a clean exit: an interrupted
// long-running task stopped because the user asked it to.
func canceledOK(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
