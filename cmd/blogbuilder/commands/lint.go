package commands

import (
	"context"
	"os"

	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format string `short:"f" default:"text" enum:"text,json" help:"Output format (text or json)"`
}

// Run lints the content tree and the URL template configuration. Warnings
// are advisory; only error-level findings make the command exit non-zero.
func (l *LintCmd) Run(_ *Global, root *CLI) error {
	cfg, runner, closeHooks, err := taskEnv(root)
	if err != nil {
		return err
	}
	defer closeHooks()

	return runner.Do(context.Background(), "lint", "", func(context.Context) error {
		result, err := lint.New(cfg).Run()
		if err != nil {
			return err
		}
		if err := lint.NewFormatter(l.Format).Format(os.Stdout, result, cfg.ContentDir()); err != nil {
			return err
		}
		if result.HasErrors() {
			return taskerrors.New(taskerrors.CategoryContent, taskerrors.SeverityError,
				"content has error-level findings")
		}
		return nil
	})
}
