// Package pelican invokes the external site generator. The generator owns
// all parsing and rendering; this package only builds its command lines,
// attaches the terminal and propagates exit status.
package pelican

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Options select the generator invocation mode for one run.
type Options struct {
	// SettingsPath is the rendered settings file handed to -s.
	SettingsPath string
	// Debug adds -D for verbose generator diagnostics.
	Debug bool
	// Autoreload keeps the generator running, rebuilding on content change.
	Autoreload bool
	// Listen adds the generator's own HTTP server (only meaningful together
	// with Autoreload for the serve task).
	Listen bool
	// Bind/Port configure the listen address when Listen is set.
	Bind string
	Port int
}

// Runner executes the generator binary configured in the blog config.
type Runner struct {
	binary string
}

// NewRunner builds a Runner from the generator config.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{binary: cfg.Generator.Binary}
}

// Command assembles the argument vector for opts without running anything.
func (r *Runner) Command(opts Options) []string {
	args := []string{"-s", opts.SettingsPath}
	if opts.Debug {
		args = append(args, "-D")
	}
	if opts.Autoreload {
		args = append(args, "--autoreload")
	}
	if opts.Listen {
		args = append(args, "--listen")
		if opts.Bind != "" {
			args = append(args, "-b", opts.Bind)
		}
		if opts.Port > 0 {
			args = append(args, "-p", strconv.Itoa(opts.Port))
		}
	}
	return args
}

// Run executes one generator invocation with the parent's terminal attached,
// blocking until it exits or ctx is canceled. A non-zero exit comes back as a
// generator-category error carrying the subprocess diagnostics already
// written to the terminal.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	args := r.Command(opts)
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("Running generator", logfields.Binary(r.binary), "args", args)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return taskerrors.WrapError(err, taskerrors.CategoryGenerator,
			fmt.Sprintf("%s exited with an error", r.binary))
	}
	return nil
}

// Build runs a one-shot site generation against the settings profile.
func (r *Runner) Build(ctx context.Context, settingsPath string, debug bool) error {
	return r.Run(ctx, Options{SettingsPath: settingsPath, Debug: debug})
}

// Watch runs the generator in autoreload mode until ctx is canceled.
func (r *Runner) Watch(ctx context.Context, settingsPath string, debug bool) error {
	return r.Run(ctx, Options{SettingsPath: settingsPath, Debug: debug, Autoreload: true})
}

// Serve runs autoreload plus the generator's own HTTP listener.
func (r *Runner) Serve(ctx context.Context, settingsPath string, bind string, port int, debug bool) error {
	return r.Run(ctx, Options{
		SettingsPath: settingsPath,
		Debug:        debug,
		Autoreload:   true,
		Listen:       true,
		Bind:         bind,
		Port:         port,
	})
}
