package pelican

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// InstallDeps installs the generator's Python dependencies from the
// configured requirements file. Failures surface verbatim; nothing retries.
func InstallDeps(ctx context.Context, cfg *config.Config) error {
	requirements := cfg.AbsPath(cfg.Generator.Requirements)
	if _, err := os.Stat(requirements); err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryGenerator,
			fmt.Sprintf("requirements file not found: %s", requirements))
	}

	cmd := exec.CommandContext(ctx, cfg.Generator.Pip, "install", "-r", requirements)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("Installing generator dependencies", logfields.Binary(cfg.Generator.Pip), logfields.File(requirements))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return taskerrors.WrapError(err, taskerrors.CategoryGenerator, "dependency installation failed")
	}
	return nil
}
