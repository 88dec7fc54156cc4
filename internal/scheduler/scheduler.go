package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner is one unit of periodic work, typically a pipeline.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler runs the snapshot refresh on a fixed interval.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
}

func New(r Runner, interval time.Duration) *Scheduler {
	return &Scheduler{
		runner:   r,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the periodic runs. Blocks until Stop is called or ctx is done.
// A run in progress is cancelled when the scheduler stops.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("scheduler started", "interval", s.interval)

	for {
		select {
		case <-ticker.C:
			slog.Info("scheduler: triggering snapshot refresh")
			if err := s.runner.Run(ctx); err != nil {
				slog.Error("scheduler: snapshot refresh failed", "error", err)
			}
		case <-s.stop:
			slog.Info("scheduler stopped")
			return
		case <-ctx.Done():
			slog.Info("scheduler context cancelled")
			return
		}
	}
}

// Stop signals the scheduler to stop. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
}
