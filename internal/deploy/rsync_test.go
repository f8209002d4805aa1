package deploy

import (
	"context"
	"strings"
	"testing"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
)

func TestCommandShape(t *testing.T) {
	s := &Syncer{Binary: "rsync", Host: "neumann", RemotePath: "/var/www/blog/"}

	got := strings.Join(s.Command("/srv/blog/output-publish", false), " ")
	want := "-ahvz --delete /srv/blog/output-publish/ neumann:/var/www/blog/"
	if got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestCommandDryRun(t *testing.T) {
	s := &Syncer{Binary: "rsync", Host: "h", RemotePath: "/p"}
	args := s.Command("/out", true)

	found := false
	for _, a := range args {
		if a == "-n" {
			found = true
		}
	}
	if !found {
		t.Errorf("dry run must add -n: %v", args)
	}
}

func TestCommandExtraArgsAndSlashHandling(t *testing.T) {
	s := &Syncer{Binary: "rsync", Host: "h", RemotePath: "/p", ExtraArgs: []string{"--exclude", ".git"}}

	got := strings.Join(s.Command("/out/", false), " ")
	want := "-ahvz --delete --exclude .git /out/ h:/p"
	if got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestMirrorRequiresTarget(t *testing.T) {
	s := NewSyncer(&config.Config{Deploy: config.DeployConfig{Rsync: "rsync"}})
	err := s.Mirror(context.Background(), "/out", false)
	if err == nil {
		t.Fatal("expected error without deploy target")
	}
	if !taskerrors.IsCategory(err, taskerrors.CategoryDeploy) {
		t.Errorf("error not deploy-categorized: %v", err)
	}
}

func TestMirrorPropagatesExitStatus(t *testing.T) {
	s := &Syncer{Binary: "false", Host: "h", RemotePath: "/p"}
	err := s.Mirror(context.Background(), t.TempDir(), false)
	if err == nil {
		t.Fatal("expected error from failing sync binary")
	}
	if !taskerrors.IsCategory(err, taskerrors.CategoryDeploy) {
		t.Errorf("error not deploy-categorized: %v", err)
	}

	s.Binary = "true"
	if err := s.Mirror(context.Background(), t.TempDir(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
