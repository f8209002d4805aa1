// Package deploy mirrors the published site to the remote host with rsync.
package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Syncer runs the mirror synchronization. The remote becomes an exact copy
// of the local directory, deletions included.
type Syncer struct {
	Binary     string
	Host       string
	RemotePath string
	ExtraArgs  []string
}

// NewSyncer builds a Syncer from the deploy config.
func NewSyncer(cfg *config.Config) *Syncer {
	return &Syncer{
		Binary:     cfg.Deploy.Rsync,
		Host:       cfg.Deploy.Host,
		RemotePath: cfg.Deploy.Path,
		ExtraArgs:  cfg.Deploy.ExtraArgs,
	}
}

// Configured reports whether a deploy target exists.
func (s *Syncer) Configured() bool {
	return s.Host != "" && s.RemotePath != ""
}

// Command assembles the rsync argument vector for localDir.
func (s *Syncer) Command(localDir string, dryRun bool) []string {
	args := []string{"-ahvz", "--delete"}
	if dryRun {
		args = append(args, "-n")
	}
	args = append(args, s.ExtraArgs...)
	// Trailing slash: sync the directory contents, not the directory itself.
	local := strings.TrimRight(localDir, "/") + "/"
	args = append(args, local, fmt.Sprintf("%s:%s", s.Host, s.RemotePath))
	return args
}

// Mirror synchronizes localDir to the remote target. A failure leaves
// whatever partial remote state rsync produced; there is no rollback.
func (s *Syncer) Mirror(ctx context.Context, localDir string, dryRun bool) error {
	if !s.Configured() {
		return taskerrors.New(taskerrors.CategoryDeploy, taskerrors.SeverityError,
			"no deploy target configured (deploy.host and deploy.path)")
	}

	args := s.Command(localDir, dryRun)
	cmd := exec.CommandContext(ctx, s.Binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("Mirroring output to remote",
		logfields.Path(localDir),
		logfields.Host(s.Host),
		"remote_path", s.RemotePath,
		"dry_run", dryRun)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return taskerrors.WrapError(err, taskerrors.CategoryDeploy, "mirror synchronization failed")
	}
	return nil
}
