package metrics

import "time"

// Recorder defines the hooks task execution reports into.
type Recorder interface {
	ObserveTaskDuration(task string, d time.Duration)
	IncTaskOutcome(task, outcome string)
	// IncRebuild counts scheduled full rebuilds under watch.
	IncRebuild()
}

// NoopRecorder is the Recorder used when metrics are not configured.
type NoopRecorder struct{}

var _ Recorder = NoopRecorder{}

func (NoopRecorder) ObserveTaskDuration(string, time.Duration) {}
func (NoopRecorder) IncTaskOutcome(string, string)             {}
func (NoopRecorder) IncRebuild()                               {}
