package tasks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogbuilder/internal/history"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/notify"
)

// Outcome values recorded with every run.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeCanceled = "canceled"
)

// reportTimeout bounds the history append after the task context is done.
const reportTimeout = 5 * time.Second

// RunAppender records finished runs. *history.Store implements it.
type RunAppender interface {
	Append(ctx context.Context, run history.Run) error
}

// EventPublisher announces finished runs. *notify.Publisher implements it.
type EventPublisher interface {
	Publish(event notify.Event) error
}

// Hooks are the reporting channels around a task run. Nil fields disable the
// corresponding channel.
type Hooks struct {
	History  RunAppender
	Notifier EventPublisher
	Metrics  metrics.Recorder
}

// Runner executes one task per Do call: it assigns a run id, times the task,
// classifies the outcome and reports it. The task's own error is returned
// unchanged; reporting failures are logged, never propagated.
type Runner struct {
	hooks Hooks
}

// NewRunner builds a Runner. A nil Metrics recorder defaults to the noop one.
func NewRunner(hooks Hooks) *Runner {
	if hooks.Metrics == nil {
		hooks.Metrics = metrics.NoopRecorder{}
	}
	return &Runner{hooks: hooks}
}

// Do runs fn as one recorded invocation of task. profile names the settings
// profile the task built with, empty for tasks that have none.
func (r *Runner) Do(ctx context.Context, task, profile string, fn func(context.Context) error) error {
	id := uuid.NewString()
	started := time.Now()
	slog.Info("Task started", logfields.Task(task), logfields.RunID(id))

	err := fn(ctx)
	elapsed := time.Since(started)
	outcome := classifyOutcome(err)

	switch outcome {
	case OutcomeSuccess:
		slog.Info("Task completed",
			logfields.Task(task), logfields.RunID(id),
			logfields.Outcome(outcome), logfields.DurationMS(float64(elapsed.Milliseconds())))
	case OutcomeCanceled:
		slog.Info("Task canceled",
			logfields.Task(task), logfields.RunID(id),
			logfields.DurationMS(float64(elapsed.Milliseconds())))
	default:
		slog.Error("Task failed",
			logfields.Task(task), logfields.RunID(id),
			logfields.DurationMS(float64(elapsed.Milliseconds())), logfields.Error(err))
	}

	r.hooks.Metrics.ObserveTaskDuration(task, elapsed)
	r.hooks.Metrics.IncTaskOutcome(task, outcome)
	r.record(history.Run{
		ID:        id,
		Task:      task,
		Profile:   profile,
		StartedAt: started,
		Duration:  elapsed,
		Outcome:   outcome,
		Detail:    errDetail(err),
	})
	r.announce(notify.Event{
		RunID:      id,
		Task:       task,
		Profile:    profile,
		Outcome:    outcome,
		DurationMS: elapsed.Milliseconds(),
		Timestamp:  time.Now().UTC(),
	})
	return err
}

// record appends the run to history on a fresh context: the task's own
// context is usually already canceled when a run ends in OutcomeCanceled.
func (r *Runner) record(run history.Run) {
	if r.hooks.History == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()
	if err := r.hooks.History.Append(ctx, run); err != nil {
		slog.Warn("Failed to record run in history", logfields.RunID(run.ID), logfields.Error(err))
	}
}

func (r *Runner) announce(event notify.Event) {
	if r.hooks.Notifier == nil {
		return
	}
	if err := r.hooks.Notifier.Publish(event); err != nil {
		slog.Error("Failed to publish task event", logfields.RunID(event.RunID), logfields.Error(err))
	}
}

func classifyOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeFailure
	}
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
