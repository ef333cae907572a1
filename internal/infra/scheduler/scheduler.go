package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const fallbackDelay = 10 * time.Minute

// PollScheduler paces the polling loop. The next run is computed from the
// moment the previous cycle finished, so cycles never overlap.
type PollScheduler struct {
	schedule cron.Schedule
	spec     string
	now      func() time.Time
}

// NewPollScheduler parses a standard cron spec or descriptor such as "@every 10m".
func NewPollScheduler(spec string) (*PollScheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("could not parse poll schedule %q: %w", spec, err)
	}
	if schedule.Next(time.Now()).IsZero() {
		return nil, fmt.Errorf("poll schedule %q never fires", spec)
	}
	return &PollScheduler{
		schedule: schedule,
		spec:     spec,
		now:      time.Now,
	}, nil
}

// Every is a fixed-delay scheduler.
func Every(d time.Duration) *PollScheduler {
	return &PollScheduler{
		schedule: cron.Every(d),
		spec:     "@every " + d.String(),
		now:      time.Now,
	}
}

func (s *PollScheduler) String() string {
	return s.spec
}

// Delay returns how long to wait from now until the next run.
func (s *PollScheduler) Delay() time.Duration {
	now := s.now()
	next := s.schedule.Next(now)
	if next.IsZero() {
		// Never back-to-back: a schedule that stopped firing falls back to the default period.
		return fallbackDelay
	}
	return next.Sub(now)
}

// Wait blocks until the next run or until ctx is done.
func (s *PollScheduler) Wait(ctx context.Context) error {
	timer := time.NewTimer(s.Delay())
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
