package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
)

const snapshotTimeout = 2 * time.Minute

// Snapshotter produces and stores a daily summary.
type Snapshotter interface {
	Snapshot(ctx context.Context) (models.DailySummary, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	reports  Snapshotter
	logger   *zap.Logger
}

// NewScheduler creates a scheduler that fires the daily summary on schedule,
// a standard five-field cron expression evaluated in loc.
func NewScheduler(schedule string, loc *time.Location, reports Snapshotter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		reports:  reports,
		logger:   logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.takeSnapshot); err != nil {
		return fmt.Errorf("schedule daily summary: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) takeSnapshot() {
	s.logger.Info("generating daily summary")
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	if _, err := s.reports.Snapshot(ctx); err != nil {
		s.logger.Error("failed to generate daily summary", zap.Error(err))
		return
	}

	s.logger.Info("daily summary generated successfully")
}
