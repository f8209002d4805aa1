package commands

import (
	"context"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/tasks"
)

// WatchCmd implements the 'watch' command: the regenerating generator and the
// preview server supervised as one unit. Live reload is on by default here;
// the whole point of watch is the edit-save-refresh loop.
type WatchCmd struct {
	Debug        bool `help:"Pass --debug to the generator"`
	NoLiveReload bool `name:"no-live-reload" help:"Disable live reload script injection"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	// One registry feeds both the task instrumentation and the supervisor's
	// rebuild counter, so /metrics shows them side by side.
	var rec metrics.Recorder
	var reg *prom.Registry
	if cfg.Metrics.Enabled {
		reg = prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
	}

	runner, closeHooks := newRunner(cfg, rec)
	defer closeHooks()

	sup := tasks.NewSupervisor(cfg, tasks.WatchOptions{
		Debug:      w.Debug,
		LiveReload: !w.NoLiveReload,
		Recorder:   rec,
	})
	if cfg.Metrics.Enabled {
		sup.ServeMetrics(cfg.Metrics.Listen, reg)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return canceledOK(runner.Do(ctx, "watch", tasks.ProfileBase, sup.Run))
}
