package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/pelican"
	"git.home.luguber.info/inful/blogbuilder/internal/preview"
)

// WatchGenerator is the generator as watch uses it: the long-running
// autoreload loop plus the one-shot build behind periodic rebuilds.
// *pelican.Runner implements it.
type WatchGenerator interface {
	Generator
	Watch(ctx context.Context, settingsPath string, debug bool) error
}

// StaticServer serves the output directory. *preview.Server implements it.
type StaticServer interface {
	Serve(ctx context.Context) error
}

// WatchOptions adjust the watch supervisor.
type WatchOptions struct {
	Debug bool
	// LiveReload turns on the preview server's reload channel regardless of
	// the preview config.
	LiveReload bool
	// Recorder counts periodic rebuilds; nil disables recording.
	Recorder metrics.Recorder
}

// Supervisor runs the regenerating generator and the preview server as one
// unit. Both start together, the first fatal error stops both, and shutdown
// is ordered: the generator is stopped and drained first, so the server
// keeps the last complete output browsable until it is the only thing left.
type Supervisor struct {
	cfg  *config.Config
	gen  WatchGenerator
	srv  StaticServer
	rec  metrics.Recorder
	aux  []auxComponent
	opts WatchOptions

	// rebuildEvery > 0 schedules periodic full builds on top of the
	// generator's own change-driven regeneration.
	rebuildEvery time.Duration
}

// auxComponent is a secondary listener that lives for the supervisor's
// lifetime; its failure is fatal to the whole unit.
type auxComponent struct {
	name string
	run  func(ctx context.Context) error
}

// NewSupervisor assembles the watch unit from config.
func NewSupervisor(cfg *config.Config, opts WatchOptions) *Supervisor {
	srv := preview.NewServer(cfg)
	if opts.LiveReload {
		srv.EnableLiveReload()
	}
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}

	s := &Supervisor{
		cfg:  cfg,
		gen:  pelican.NewRunner(cfg),
		srv:  srv,
		rec:  rec,
		opts: opts,
	}
	if cfg.Watch.RebuildInterval != "" {
		// Validated at config load.
		s.rebuildEvery, _ = time.ParseDuration(cfg.Watch.RebuildInterval)
	}
	return s
}

// ServeMetrics adds a Prometheus listener on addr for the supervisor's
// lifetime.
func (s *Supervisor) ServeMetrics(addr string, reg *prom.Registry) {
	s.aux = append(s.aux, auxComponent{
		name: "metrics",
		run:  func(ctx context.Context) error { return metrics.Serve(ctx, addr, reg) },
	})
}

// Run blocks until ctx is canceled or a component fails, then shuts the unit
// down in order and returns the first real error.
func (s *Supervisor) Run(ctx context.Context) error {
	settingsPath, cleanup, err := writeBaseProfile(s.cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.rebuildEvery > 0 {
		sched, err := NewScheduler()
		if err != nil {
			return err
		}
		if err := sched.ScheduleRebuild(s.rebuildEvery, func() {
			s.runScheduledRebuild(runCtx, settingsPath)
		}); err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Scheduler did not stop cleanly", logfields.Error(err))
			}
		}()
		slog.Info("Periodic rebuild scheduled", "interval", s.rebuildEvery.String())
	}

	// The generator cancels with the parent; the server's context is
	// detached so it only stops when told to, after the generator is gone.
	genCtx, stopGen := context.WithCancel(runCtx)
	defer stopGen()
	srvCtx, stopSrv := context.WithCancel(context.WithoutCancel(runCtx))
	defer stopSrv()

	genDone := make(chan error, 1)
	go func() { genDone <- s.gen.Watch(genCtx, settingsPath, s.opts.Debug) }()

	srvDone := make(chan error, 1)
	go func() { srvDone <- s.srv.Serve(srvCtx) }()

	var auxDone chan error
	for _, c := range s.aux {
		if auxDone == nil {
			auxDone = make(chan error, len(s.aux))
		}
		go func(c auxComponent) {
			err := ignoreCanceled(c.run(runCtx))
			if err != nil {
				err = fmt.Errorf("%s: %w", c.name, err)
			}
			auxDone <- err
		}(c)
	}

	genRunning, srvRunning := true, true
	auxRemaining := len(s.aux)
	var firstErr error

	select {
	case <-ctx.Done():
		slog.Info("Watch stopping")
	case err := <-genDone:
		genRunning = false
		firstErr = ignoreCanceled(err)
		slog.Info("Generator exited", logfields.Error(err))
	case err := <-srvDone:
		srvRunning = false
		firstErr = ignoreCanceled(err)
		slog.Info("Preview server exited", logfields.Error(err))
	case err := <-auxDone:
		auxRemaining--
		firstErr = err
	}

	// Ordered shutdown: generator first, then the server.
	stopGen()
	if genRunning {
		err := ignoreCanceled(<-genDone)
		if firstErr == nil {
			firstErr = err
		}
	}
	stopSrv()
	if srvRunning {
		err := ignoreCanceled(<-srvDone)
		if firstErr == nil {
			firstErr = err
		}
	}

	cancel()
	for ; auxRemaining > 0; auxRemaining-- {
		err := <-auxDone
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// runScheduledRebuild runs one full generation against the already-rendered
// base profile. Failures are logged and the schedule keeps going; a broken
// draft should not take the whole watch down.
func (s *Supervisor) runScheduledRebuild(ctx context.Context, settingsPath string) {
	if ctx.Err() != nil {
		return
	}
	slog.Info("Running periodic rebuild")
	if err := s.gen.Build(ctx, settingsPath, s.opts.Debug); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("Periodic rebuild failed", logfields.Error(err))
		}
		return
	}
	s.rec.IncRebuild()
}

// ignoreCanceled maps context cancellation to nil: a canceled component
// stopped because it was told to, not because it failed.
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
