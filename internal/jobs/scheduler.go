// Package jobs runs periodic background work on a cron schedule.
package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/jwalitptl/hospiflow/pkg/logger"
)

type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	logger *logger.Logger
}

func NewScheduler(log *logger.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(),
		ctx:    ctx,
		cancel: cancel,
		logger: log.With("scheduler"),
	}
}

// Add registers job on a standard five-field cron spec.
func (s *Scheduler) Add(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := job.Run(s.ctx); err != nil {
			s.logger.Error(err, "job failed", "job", job.Name())
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", spec, job.Name(), err)
	}
	s.logger.Info("job scheduled", "job", job.Name(), "schedule", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels in-flight runs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
