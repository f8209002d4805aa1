package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder on a dedicated registry.
type PrometheusRecorder struct {
	taskDuration *prom.HistogramVec
	taskOutcomes *prom.CounterVec
	rebuilds     prom.Counter
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder constructs and registers the task metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		taskDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "blogbuilder",
			Name:      "task_duration_seconds",
			Help:      "Duration of task runs",
			Buckets:   prom.DefBuckets,
		}, []string{"task"}),
		taskOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blogbuilder",
			Name:      "task_outcomes_total",
			Help:      "Task outcomes by final status",
		}, []string{"task", "outcome"}),
		rebuilds: prom.NewCounter(prom.CounterOpts{
			Namespace: "blogbuilder",
			Name:      "rebuilds_total",
			Help:      "Scheduled full rebuilds triggered under watch",
		}),
	}
	reg.MustRegister(pr.taskDuration, pr.taskOutcomes, pr.rebuilds)
	return pr
}

func (p *PrometheusRecorder) ObserveTaskDuration(task string, d time.Duration) {
	if p == nil || p.taskDuration == nil {
		return
	}
	p.taskDuration.WithLabelValues(task).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncTaskOutcome(task, outcome string) {
	if p == nil || p.taskOutcomes == nil {
		return
	}
	p.taskOutcomes.WithLabelValues(task, outcome).Inc()
}

func (p *PrometheusRecorder) IncRebuild() {
	if p == nil || p.rebuilds == nil {
		return
	}
	p.rebuilds.Inc()
}

// HTTPHandler serves the registry in the Prometheus exposition format.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, reg *prom.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	slog.Info("metrics endpoint listening", slog.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}
