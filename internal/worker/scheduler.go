// Package worker запускает фоновые задачи по расписанию cron.
package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job - периодическая задача.
type Job interface {
	Name() string
	Schedule() string
	Run(ctx context.Context) error
}

type entry struct {
	job  Job
	busy atomic.Bool
}

// Scheduler не запускает задачу повторно, пока не завершился предыдущий прогон.
type Scheduler struct {
	cron    *cron.Cron
	entries []*entry
	logger  *zap.Logger
	timeout time.Duration
}

func NewScheduler(logger *zap.Logger, timeout time.Duration, jobs ...Job) *Scheduler {
	s := &Scheduler{cron: cron.New(), logger: logger, timeout: timeout}
	for _, j := range jobs {
		s.entries = append(s.entries, &entry{job: j})
	}
	return s
}

// Start регистрирует задачи и запускает cron; задачи получают дочерний от ctx контекст.
func (s *Scheduler) Start(ctx context.Context) error {
	for _, e := range s.entries {
		e := e
		if _, err := s.cron.AddFunc(e.job.Schedule(), func() { s.runOnce(ctx, e) }); err != nil {
			return fmt.Errorf("add job %s: %w", e.job.Name(), err)
		}
		s.logger.Info("job scheduled", zap.String("job", e.job.Name()), zap.String("schedule", e.job.Schedule()))
	}
	s.cron.Start()
	return nil
}

// Stop останавливает cron и ждёт завершения запущенных задач или отмены ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		s.logger.Info("scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) runOnce(ctx context.Context, e *entry) {
	if !e.busy.CompareAndSwap(false, true) {
		s.logger.Debug("job still running, skipping", zap.String("job", e.job.Name()))
		return
	}
	defer e.busy.Store(false)

	jobCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := e.job.Run(jobCtx); err != nil {
		s.logger.Error("job failed", zap.String("job", e.job.Name()), zap.Error(err))
		return
	}
	s.logger.Debug("job finished", zap.String("job", e.job.Name()), zap.Duration("took", time.Since(start)))
}
