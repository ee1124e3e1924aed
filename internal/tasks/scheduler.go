package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of background work. The context ends when the scheduler
// stops.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron   *cron.Cron
	log    *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(),
		log:    logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddTask schedules job under a cron spec such as "@every 1h" or
// "0 */6 * * *". An empty spec disables the task.
func (s *Scheduler) AddTask(name, spec string, timeout time.Duration, job Job) error {
	if spec == "" {
		s.log.Info("scheduled task disabled", "task", name)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	run := func() {
		ctx := s.ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		start := time.Now()
		if err := job(ctx); err != nil {
			s.log.Error("scheduled task failed", "task", name, "error", err)
			return
		}
		s.log.Info("scheduled task finished", "task", name, "duration_ms", time.Since(start).Milliseconds())
	}

	if _, err := s.cron.AddFunc(spec, s.recoveryWrapper(name, run)); err != nil {
		return fmt.Errorf("schedule %s with %q: %w", name, spec, err)
	}
	s.log.Info("scheduled task", "task", name, "spec", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) recoveryWrapper(name string, job func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("scheduled task panicked", "task", name, "panic", r, "stack", string(debug.Stack()))
			}
		}()
		job()
	}
}
