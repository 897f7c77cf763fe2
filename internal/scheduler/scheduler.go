// Package scheduler runs the cron job that rolls the active policy year
// over to the current calendar year.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// YearSetter receives the new active year.
type YearSetter interface {
	SetActiveYear(year int) error
}

// Scheduler owns a cron runner with a single rollover entry.
type Scheduler struct {
	cron   *cron.Cron
	target YearSetter
	logger *zap.Logger
	spec   string
	now    func() time.Time
}

// New validates spec (standard five-field cron syntax or a descriptor such
// as @yearly) and registers the rollover job. An empty spec uses the
// January 1st default.
func New(spec string, target YearSetter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spec == "" {
		spec = constants.DefaultRolloverSchedule
	}
	s := &Scheduler{
		cron:   cron.New(),
		target: target,
		logger: logger,
		spec:   spec,
		now:    time.Now,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid rollover schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	if err := s.Rollover(); err != nil {
		s.logger.Error("policy year rollover failed",
			zap.String("op", "scheduler.run"),
			zap.Error(err),
		)
	}
}

// Rollover sets the active year to the current calendar year.
func (s *Scheduler) Rollover() error {
	year := s.now().Year()
	if err := s.target.SetActiveYear(year); err != nil {
		return fmt.Errorf("rollover to %d: %w", year, err)
	}
	s.logger.Info("policy year rolled over",
		zap.String("op", "scheduler.Rollover"),
		zap.Int("year", year),
	)
	return nil
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.logger.Info("starting policy year scheduler",
		zap.String("op", "scheduler.Start"),
		zap.String("schedule", s.spec),
	)
	s.cron.Start()
}

// Stop halts the loop and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Stop(stopCtx)
}

// Next reports when the rollover job fires next. It is zero before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
