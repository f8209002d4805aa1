package tasks

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Scheduler drives periodic full rebuilds under watch. The generator's
// autoreload only reacts to file changes; content whose publication date
// arrives needs a rebuild no file change will ever trigger.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates an idle scheduler.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, taskerrors.WrapError(err, taskerrors.CategoryInternal, "failed to create scheduler")
	}
	return &Scheduler{scheduler: s}, nil
}

// ScheduleRebuild registers fn to run every interval, first run one interval
// after Start.
func (s *Scheduler) ScheduleRebuild(interval time.Duration, fn func()) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryInternal, "failed to schedule periodic rebuild")
	}
	return nil
}

// Start begins firing scheduled jobs.
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Stop shuts the scheduler down and waits for running jobs.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
