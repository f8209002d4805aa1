// Package git keeps theme and plugin checkouts in sync with their upstream
// repositories. The develop task is the only caller; everything is public
// read-only material, so there is no auth and a diverged checkout is the
// user's to resolve.
package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Dependency is one repository the site build needs on disk.
type Dependency struct {
	Name   string // label used in logs and errors
	URL    string
	Branch string // optional; remote default branch when empty
	Dir    string // absolute checkout directory
}

// Client performs clone-or-update operations for site dependencies.
type Client struct{}

func NewClient() *Client { return &Client{} }

// Ensure makes dep.Dir an up-to-date checkout of dep.URL: clone when the
// directory is not a repository yet, fast-forward pull when it is. Any
// failure aborts the caller; there are no retries.
func (c *Client) Ensure(ctx context.Context, dep Dependency) error {
	if _, err := os.Stat(filepath.Join(dep.Dir, ".git")); err != nil {
		if !os.IsNotExist(err) {
			return taskerrors.WrapError(err, taskerrors.CategoryGit, fmt.Sprintf("inspect %s", dep.Dir))
		}
		return c.clone(ctx, dep)
	}
	return c.update(ctx, dep)
}

// EnsureAll processes dependencies in order and stops at the first failure.
func (c *Client) EnsureAll(ctx context.Context, deps []Dependency) error {
	for _, dep := range deps {
		if err := c.Ensure(ctx, dep); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) clone(ctx context.Context, dep Dependency) error {
	slog.Info("cloning dependency",
		logfields.Name(dep.Name), logfields.URL(dep.URL), logfields.Path(dep.Dir))

	opts := &git.CloneOptions{URL: dep.URL}
	if dep.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(dep.Branch)
		opts.SingleBranch = true
	}
	repo, err := git.PlainCloneContext(ctx, dep.Dir, false, opts)
	if err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryGit, fmt.Sprintf("clone %s", dep.URL))
	}
	if ref, herr := repo.Head(); herr == nil {
		slog.Info("dependency cloned", logfields.Name(dep.Name), slog.String("commit", shortHash(ref.Hash())))
	}
	return nil
}

func (c *Client) update(ctx context.Context, dep Dependency) error {
	repo, err := git.PlainOpen(dep.Dir)
	if err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryGit, fmt.Sprintf("open %s", dep.Dir))
	}
	wt, err := repo.Worktree()
	if err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryGit, fmt.Sprintf("worktree %s", dep.Dir))
	}

	opts := &git.PullOptions{RemoteName: "origin"}
	if dep.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(dep.Branch)
		opts.SingleBranch = true
	}
	switch err := wt.PullContext(ctx, opts); {
	case errors.Is(err, git.NoErrAlreadyUpToDate):
		slog.Info("dependency up to date", logfields.Name(dep.Name))
		return nil
	case errors.Is(err, git.ErrNonFastForwardUpdate):
		return taskerrors.WrapError(err, taskerrors.CategoryGit,
			fmt.Sprintf("%s has local commits not on origin; resolve %s manually", dep.Name, dep.Dir))
	case err != nil:
		return taskerrors.WrapError(err, taskerrors.CategoryGit, fmt.Sprintf("update %s", dep.Name))
	}

	if ref, herr := repo.Head(); herr == nil {
		slog.Info("dependency updated", logfields.Name(dep.Name), slog.String("commit", shortHash(ref.Hash())))
	}
	return nil
}

func shortHash(h plumbing.Hash) string { return h.String()[:8] }
