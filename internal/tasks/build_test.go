package tasks

import (
	"context"
	"testing"

	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
)

func TestBuildRendersProfileAndRunsGenerator(t *testing.T) {
	cfg := testConfig(t)
	// test(1) receives `-s <path>` and exits zero only if the rendered
	// settings file exists and is non-empty.
	cfg.Generator.Binary = "test"

	if err := Build(context.Background(), cfg, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildPropagatesGeneratorFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generator.Binary = "false"

	err := Build(context.Background(), cfg, false)
	if err == nil {
		t.Fatal("expected error from failing generator")
	}
	if !taskerrors.IsCategory(err, taskerrors.CategoryGenerator) {
		t.Errorf("error not generator-categorized: %v", err)
	}
}

func TestRegenerateStopsOnCancellation(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generator.Binary = "sleep"
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Regenerate(ctx, cfg, false); err == nil {
		t.Fatal("expected error from canceled context")
	}
}
