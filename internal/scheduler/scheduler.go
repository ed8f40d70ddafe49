// Package scheduler triggers pipeline runs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// RunFunc is the unit of work the scheduler triggers.
type RunFunc func(ctx context.Context) error

// Scheduler runs the pipeline on a cron expression. Overlapping runs are
// skipped rather than queued: a fetch over dozens of cities can outlast a
// tight schedule, and re-running on stale timing adds nothing.
type Scheduler struct {
	cron    *cron.Cron
	run     RunFunc
	timeout time.Duration
	logger  *slog.Logger
	running atomic.Bool
}

// New validates the cron expression and prepares the scheduler. The timeout
// bounds each triggered run.
func New(spec string, run RunFunc, timeout time.Duration, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		run:     run,
		timeout: timeout,
		logger:  logger,
	}

	if _, err := s.cron.AddFunc(spec, s.trigger); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.logger.Info("scheduler started")
	s.cron.Start()
}

// Stop halts scheduling and returns a context that completes when any
// in-flight run has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) trigger() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous run still in progress, skipping this trigger")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.run(ctx); err != nil {
		s.logger.Error("scheduled run failed", "error", err)
	}
}
