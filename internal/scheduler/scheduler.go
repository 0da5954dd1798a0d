// Package scheduler runs the periodic template refresh on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"task-planner/internal/task"
	"task-planner/pkg/log"
)

var ErrEmptySpec = errors.New("scheduler: empty cron spec")

// Refresher is the use-case slice the scheduler drives.
type Refresher interface {
	MaterializeAll(ctx context.Context) (task.MaterializeAllOutput, error)
}

// Scheduler triggers MaterializeAll on a cron spec. Runs never overlap:
// a tick that fires while the previous refresh is still running is skipped.
type Scheduler struct {
	l       log.Logger
	r       Refresher
	cron    *cron.Cron
	timeout time.Duration

	mu      sync.Mutex
	running bool
}

// New parses spec (standard five fields or a descriptor such as "@daily")
// and evaluates it in loc.
func New(l log.Logger, r Refresher, spec string, loc *time.Location, timeout time.Duration) (*Scheduler, error) {
	if spec == "" {
		return nil, ErrEmptySpec
	}
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		l:       l,
		r:       r,
		cron:    cron.New(cron.WithLocation(loc)),
		timeout: timeout,
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("scheduler: invalid spec %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the cron loop in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron loop and waits for a running refresh to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.l.Warnf(ctx, "scheduler.Stop: refresh still running: %v", ctx.Err())
	}
}

// Next reports when the refresh fires next. It is zero before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.l.Warn(context.Background(), "scheduler: previous refresh still running, skipping")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	_, _ = s.RunOnce(context.Background())
}

// RunOnce refreshes every template now, outside the cron schedule.
func (s *Scheduler) RunOnce(ctx context.Context) (task.MaterializeAllOutput, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.r.MaterializeAll(ctx)
	if err != nil {
		s.l.Errorf(ctx, "scheduler.RunOnce: %v", err)
		return out, err
	}
	s.l.Infof(ctx, "scheduler.RunOnce: templates=%d created=%d failed=%d took=%s",
		out.Templates, out.Created, out.Failed, time.Since(start))
	return out, nil
}
