package housekeeping

import (
	"context"
	"fmt"
	"time"

	"go-fleet/internal/features/report"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Nightly sweep schedule, standard 5-field cron expression.
const sweepSchedule = "0 3 * * *"

// HousekeepingService runs the nightly retention sweep. Retention is also
// enforced inline on every report generation; the sweep exists to catch
// users whose cap was lowered after their descriptors were written.
type HousekeepingService interface {
	Start(ctx context.Context) error
	Stop()
	RunRetentionSweep(ctx context.Context)
}

type HousekeepingServiceImpl struct {
	ReportService report.ReportService
	Log           *zap.Logger

	scheduler *cron.Cron
}

func NewHousekeepingService(reportService report.ReportService, log *zap.Logger) HousekeepingService {
	return &HousekeepingServiceImpl{
		ReportService: reportService,
		Log:           log,
	}
}

func (s *HousekeepingServiceImpl) Start(ctx context.Context) error {
	s.scheduler = cron.New()

	_, err := s.scheduler.AddFunc(sweepSchedule, func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		s.RunRetentionSweep(sweepCtx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention sweep: %w", err)
	}

	s.scheduler.Start()
	s.Log.Info("housekeeping scheduler started", zap.String("schedule", sweepSchedule))
	return nil
}

func (s *HousekeepingServiceImpl) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *HousekeepingServiceImpl) RunRetentionSweep(ctx context.Context) {
	started := time.Now()

	owners, err := s.ReportService.AllDescriptorOwners(ctx)
	if err != nil {
		s.Log.Error("retention sweep failed to list report owners", zap.Error(err))
		return
	}

	for _, userID := range owners {
		s.ReportService.EnforceRetention(ctx, userID)
	}

	s.Log.Info("retention sweep finished",
		zap.Int("owners", len(owners)),
		zap.Duration("took", time.Since(started)))
}
