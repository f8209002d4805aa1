package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// newUpstream creates a bare repository plus a seed worktree pushing to it,
// so tests can publish commits the way a real remote would receive them.
func newUpstream(t *testing.T) (barePath string, seed *git.Repository, seedPath string) {
	t.Helper()
	tmp := t.TempDir()
	barePath = filepath.Join(tmp, "remote.git")
	if _, err := git.PlainInit(barePath, true); err != nil {
		t.Fatalf("init bare: %v", err)
	}

	seedPath = filepath.Join(tmp, "seed")
	seed, err := git.PlainInit(seedPath, false)
	if err != nil {
		t.Fatalf("init seed: %v", err)
	}
	if _, err := seed.CreateRemote(&ggitcfg.RemoteConfig{Name: "origin", URLs: []string{barePath}}); err != nil {
		t.Fatalf("create remote: %v", err)
	}

	commitFile(t, seed, seedPath, "pelicanconf.py", "AUTHOR = 'seed'", "initial")
	if err := seed.Push(&git.PushOptions{RemoteName: "origin"}); err != nil {
		t.Fatalf("push initial: %v", err)
	}
	return barePath, seed, seedPath
}

func commitFile(t *testing.T, repo *git.Repository, repoPath, name, content, msg string) {
	t.Helper()
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(repoPath, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	sig := &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()}
	if _, err := wt.Commit(msg, &git.CommitOptions{Author: sig}); err != nil {
		t.Fatalf("commit %s: %v", msg, err)
	}
}

func TestEnsureClonesMissingCheckout(t *testing.T) {
	barePath, _, _ := newUpstream(t)
	dir := filepath.Join(t.TempDir(), "pelican-themes")

	client := NewClient()
	dep := Dependency{Name: "themes", URL: barePath, Branch: "master", Dir: dir}
	require.NoError(t, client.Ensure(context.Background(), dep))

	require.DirExists(t, filepath.Join(dir, ".git"))
	data, err := os.ReadFile(filepath.Join(dir, "pelicanconf.py"))
	require.NoError(t, err)
	require.Equal(t, "AUTHOR = 'seed'", string(data))
}

func TestEnsureFastForwardsExistingCheckout(t *testing.T) {
	barePath, seed, seedPath := newUpstream(t)
	dir := filepath.Join(t.TempDir(), "pelican-plugins")

	client := NewClient()
	dep := Dependency{Name: "plugins", URL: barePath, Branch: "master", Dir: dir}
	require.NoError(t, client.Ensure(context.Background(), dep))

	commitFile(t, seed, seedPath, "sitemap.py", "# sitemap plugin", "add sitemap")
	if err := seed.Push(&git.PushOptions{RemoteName: "origin"}); err != nil {
		t.Fatalf("push update: %v", err)
	}

	require.NoError(t, client.Ensure(context.Background(), dep))
	require.FileExists(t, filepath.Join(dir, "sitemap.py"))
}

func TestEnsureNoopWhenAlreadyCurrent(t *testing.T) {
	barePath, _, _ := newUpstream(t)
	dir := filepath.Join(t.TempDir(), "theme")

	client := NewClient()
	dep := Dependency{Name: "theme", URL: barePath, Branch: "master", Dir: dir}
	require.NoError(t, client.Ensure(context.Background(), dep))
	require.NoError(t, client.Ensure(context.Background(), dep))
}

func TestEnsureFailsOnDivergedCheckout(t *testing.T) {
	barePath, seed, seedPath := newUpstream(t)
	dir := filepath.Join(t.TempDir(), "theme")

	client := NewClient()
	dep := Dependency{Name: "theme", URL: barePath, Branch: "master", Dir: dir}
	require.NoError(t, client.Ensure(context.Background(), dep))

	// Local edit committed in the checkout, different commit pushed upstream.
	local, err := git.PlainOpen(dir)
	require.NoError(t, err)
	commitFile(t, local, dir, "local.css", "body {}", "local tweak")

	commitFile(t, seed, seedPath, "upstream.css", "a {}", "upstream tweak")
	if err := seed.Push(&git.PushOptions{RemoteName: "origin"}); err != nil {
		t.Fatalf("push upstream: %v", err)
	}

	err = client.Ensure(context.Background(), dep)
	require.Error(t, err)
	require.Equal(t, taskerrors.CategoryGit, taskerrors.GetCategory(err))
	require.Contains(t, err.Error(), "resolve")
}

func TestEnsureAllStopsAtFirstFailure(t *testing.T) {
	barePath, _, _ := newUpstream(t)
	base := t.TempDir()

	deps := []Dependency{
		{Name: "broken", URL: filepath.Join(base, "missing.git"), Dir: filepath.Join(base, "broken")},
		{Name: "theme", URL: barePath, Branch: "master", Dir: filepath.Join(base, "theme")},
	}

	err := NewClient().EnsureAll(context.Background(), deps)
	require.Error(t, err)
	require.Equal(t, taskerrors.CategoryGit, taskerrors.GetCategory(err))

	// The failure aborted the sequence before the second dependency ran.
	_, statErr := os.Stat(filepath.Join(base, "theme"))
	require.True(t, os.IsNotExist(statErr))
}
