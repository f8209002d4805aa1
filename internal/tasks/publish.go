package tasks

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/deploy"
	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/pelican"
)

// Generator runs one-shot site generation. *pelican.Runner implements it.
type Generator interface {
	Build(ctx context.Context, settingsPath string, debug bool) error
}

// Mirrorer pushes the publish output to the remote. *deploy.Syncer
// implements it.
type Mirrorer interface {
	Configured() bool
	Mirror(ctx context.Context, localDir string, dryRun bool) error
}

// PublishOptions adjust one publish run.
type PublishOptions struct {
	// SkipSync builds the publish profile without mirroring; the remote is
	// left untouched.
	SkipSync bool
	// IncludeDrafts drops the draft-by-default metadata override.
	IncludeDrafts bool
	// DryRun passes rsync -n: report what would transfer, change nothing.
	DryRun bool
	Debug  bool
}

// Publisher chains the publish steps: render the merged publish profile, run
// the generator, then mirror the output. The mirror never runs when
// generation fails.
type Publisher struct {
	cfg  *config.Config
	gen  Generator
	sync Mirrorer
}

// NewPublisher wires the publish pipeline from config.
func NewPublisher(cfg *config.Config) *Publisher {
	return &Publisher{cfg: cfg, gen: pelican.NewRunner(cfg), sync: deploy.NewSyncer(cfg)}
}

// Run executes the pipeline. The deploy target is checked up front so a
// missing configuration fails before minutes of generation, not after.
func (p *Publisher) Run(ctx context.Context, opts PublishOptions) error {
	if !opts.SkipSync && !p.sync.Configured() {
		return taskerrors.New(taskerrors.CategoryDeploy, taskerrors.SeverityError,
			"no deploy target configured (deploy.host and deploy.path); use --skip-sync to build without mirroring")
	}

	settingsPath, cleanup, err := writePublishProfile(p.cfg, opts.IncludeDrafts)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := p.gen.Build(ctx, settingsPath, opts.Debug); err != nil {
		return err
	}

	if opts.SkipSync {
		slog.Info("Publish build finished, mirror skipped", logfields.Path(p.cfg.PublishOutputDir()))
		return nil
	}
	return p.sync.Mirror(ctx, p.cfg.PublishOutputDir(), opts.DryRun)
}
