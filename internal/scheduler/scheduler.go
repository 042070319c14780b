// Package scheduler drives the periodic reminder passes. Correctness
// lives in the policy cooldowns, not in the tick phases: each pass
// re-evaluates current task state, so overlapping a user mutation is
// harmless.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/AmanSahu13/Task-Management-App/internal/engine"
)

type Intervals struct {
	DueNow  time.Duration
	Overdue time.Duration
	Sweep   time.Duration
}

func DefaultIntervals() Intervals {
	return Intervals{
		DueNow:  time.Minute,
		Overdue: 5 * time.Minute,
		Sweep:   time.Hour,
	}
}

type Scheduler struct {
	engine    engine.Engine
	intervals Intervals
	logger    *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(e engine.Engine, iv Intervals, logger *log.Logger) *Scheduler {
	if iv.DueNow <= 0 {
		iv.DueNow = DefaultIntervals().DueNow
	}
	if iv.Overdue <= 0 {
		iv.Overdue = DefaultIntervals().Overdue
	}
	if iv.Sweep <= 0 {
		iv.Sweep = DefaultIntervals().Sweep
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{engine: e, intervals: iv, logger: logger}
}

// Start launches the ticker goroutines. The sweep also runs once
// immediately so a restart does not wait an hour to prune stale
// events. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)

	if n := s.engine.SweepInbox(ctx); n > 0 {
		s.logger.Printf("inbox sweep at startup removed %d events", n)
	}

	s.run(ctx, s.intervals.DueNow, func(ctx context.Context) {
		if n := s.engine.DueNowPass(ctx); n > 0 {
			s.logger.Printf("due-now pass emitted %d reminders", n)
		}
	})
	s.run(ctx, s.intervals.Overdue, func(ctx context.Context) {
		if n := s.engine.OverduePass(ctx); n > 0 {
			s.logger.Printf("overdue pass emitted %d reminders", n)
		}
	})
	s.run(ctx, s.intervals.Sweep, func(ctx context.Context) {
		if n := s.engine.SweepInbox(ctx); n > 0 {
			s.logger.Printf("inbox sweep removed %d events", n)
		}
	})
}

// Stop cancels the tickers and waits for in-flight passes. After Stop
// returns, no further pass runs.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context, every time.Duration, pass func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pass(ctx)
			}
		}
	}()
}
