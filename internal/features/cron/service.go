package cron_feature

import (
	"context"
	"fmt"
	"sync"
	"time"

	"patient-reports/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Purger deletes generated payloads older than a cutoff.
type Purger interface {
	PurgeGenerated(ctx context.Context, cutoff time.Time) (int64, error)
}

type RetentionService interface {
	Start(ctx context.Context) error
	Stop() error
	RunNow(ctx context.Context, trigger string) (*JobRun, error)
	ListRuns(ctx context.Context, limit int64) ([]JobRun, error)
	NextRun() *time.Time
}

type RetentionServiceImpl struct {
	repo   JobRunRepository
	purger Purger
	logger *zap.Logger

	retention time.Duration
	schedule  string
	now       func() time.Time

	scheduler *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	running   sync.Mutex
}

func NewRetentionService(repo JobRunRepository, purger Purger, cfg *config.Config, logger *zap.Logger) RetentionService {
	return &RetentionServiceImpl{
		repo:      repo,
		purger:    purger,
		logger:    logger,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		schedule:  cfg.RetentionSchedule,
		now:       time.Now,
	}
}

// Start registers the sweep on its schedule. A zero retention disables it.
func (s *RetentionServiceImpl) Start(ctx context.Context) error {
	if s.retention <= 0 {
		s.logger.Info("Retention sweep disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scheduler := cron.New()
	entryID, err := scheduler.AddFunc(s.schedule, func() {
		if _, err := s.RunNow(context.Background(), "schedule"); err != nil {
			s.logger.Error("Retention sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", s.schedule, err)
	}

	s.scheduler = scheduler
	s.entryID = entryID
	s.scheduler.Start()
	s.logger.Info("Retention sweep scheduled",
		zap.String("schedule", s.schedule),
		zap.Duration("retention", s.retention))
	return nil
}

func (s *RetentionServiceImpl) Stop() error {
	s.mu.Lock()
	scheduler := s.scheduler
	s.scheduler = nil
	s.mu.Unlock()

	if scheduler != nil {
		ctx := scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}

// NextRun is the next scheduled sweep, or nil when the scheduler is not running.
func (s *RetentionServiceImpl) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil {
		return nil
	}
	next := s.scheduler.Entry(s.entryID).Next
	if next.IsZero() {
		return nil
	}
	return &next
}

// RunNow purges every generated payload older than the retention window and
// records the run. Overlapping runs are serialized.
func (s *RetentionServiceImpl) RunNow(ctx context.Context, trigger string) (*JobRun, error) {
	if s.retention <= 0 {
		return nil, fmt.Errorf("retention sweep is disabled")
	}

	s.running.Lock()
	defer s.running.Unlock()

	start := s.now()
	run := &JobRun{
		JobName:   RetentionJobName,
		Trigger:   trigger,
		Cutoff:    start.Add(-s.retention),
		StartTime: start,
		Status:    RunStatusRunning,
	}
	if err := s.repo.CreateRun(ctx, run); err != nil {
		s.logger.Warn("Failed to record job run", zap.String("job", RetentionJobName), zap.Error(err))
	}

	removed, execErr := s.purger.PurgeGenerated(ctx, run.Cutoff)

	end := s.now()
	run.EndTime = &end
	run.RecordsAffected = removed
	if execErr != nil {
		run.Status = RunStatusFailed
		run.Error = execErr.Error()
	} else {
		run.Status = RunStatusSuccess
	}

	if err := s.repo.UpdateRun(ctx, run); err != nil {
		s.logger.Warn("Failed to update job run", zap.String("job", RetentionJobName), zap.Error(err))
	}

	return run, execErr
}

func (s *RetentionServiceImpl) ListRuns(ctx context.Context, limit int64) ([]JobRun, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListRuns(ctx, RetentionJobName, limit)
}
