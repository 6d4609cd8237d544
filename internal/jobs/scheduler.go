package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portssvc "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

const (
	// Both jobs run during the nightly low-traffic window, Bamako time
	// matching server time (UTC).
	staleSweepSchedule       = "0 2 * * *"
	overviewSnapshotSchedule = "30 2 * * *"

	jobTimeout = 5 * time.Minute
)

// Scheduler runs the background jobs: the stale-request sweep and the
// nightly subsidy overview snapshot.
type Scheduler struct {
	cron      *cron.Cron
	subsidy   portssvc.SubsidySvcFacade
	reporting portssvc.ReportingService
	logger    *slog.Logger
}

// NewScheduler creates a scheduler wired to the services its jobs call.
func NewScheduler(subsidy portssvc.SubsidySvcFacade, reporting portssvc.ReportingService, logger *slog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:      c,
		subsidy:   subsidy,
		reporting: reporting,
		logger:    logger,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(staleSweepSchedule, s.runStaleSweep); err != nil {
		s.logger.Error("failed to schedule stale request sweep", "error", err)
	} else {
		s.logger.Info("scheduled stale request sweep", "schedule", staleSweepSchedule)
	}

	if _, err := s.cron.AddFunc(overviewSnapshotSchedule, s.runOverviewSnapshot); err != nil {
		s.logger.Error("failed to schedule subsidy overview snapshot", "error", err)
	} else {
		s.logger.Info("scheduled subsidy overview snapshot", "schedule", overviewSnapshotSchedule)
	}

	s.cron.Start()
}

// Stop gracefully stops the cron scheduler, returning a context that is
// done once running jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runStaleSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	flagged, err := s.subsidy.SweepStaleRequests(ctx)
	if err != nil {
		s.logger.Error("stale request sweep failed", "error", err)
		return
	}
	s.logger.Info("stale request sweep completed", "flagged", flagged)
}

// runOverviewSnapshot logs the platform subsidy totals so operators have a
// daily trail without querying the API.
func (s *Scheduler) runOverviewSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	overview, err := s.reporting.GetSubsidyOverview(ctx, systemActor())
	if err != nil {
		s.logger.Error("subsidy overview snapshot failed", "error", err)
		return
	}
	s.logger.Info("subsidy overview snapshot",
		"total_granted", overview.TotalGranted.String(),
		"total_pending", overview.TotalPending.String(),
		"active_sfd_count", overview.ActiveSFDCount,
	)
}

// systemActor is the identity background jobs run under.
func systemActor() domain.AuthContext {
	return domain.AuthContext{
		UserID: "system",
		Role:   domain.RoleSuperAdmin,
	}
}
