// Package scheduler runs background maintenance jobs on cron
// schedules.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"bakestock/internal/config"
	"bakestock/internal/domain/dispatch"
	"bakestock/internal/domain/lots"
	"bakestock/internal/domain/reports"
	"bakestock/pkg/logger"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron        *cron.Cron
	lotSvc      *lots.Service
	dispatchSvc *dispatch.Service
	reportsSvc  *reports.Service
	cfg         config.SchedulerConfig
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SchedulerConfig, lotSvc *lots.Service, dispatchSvc *dispatch.Service, reportsSvc *reports.Service) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		lotSvc:      lotSvc,
		dispatchSvc: dispatchSvc,
		reportsSvc:  reportsSvc,
		cfg:         cfg,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	ctx := context.Background()
	logger.Info(ctx, "starting scheduler",
		"depletion_sweep", s.cfg.DepletionSweep,
		"weekly_summary", s.cfg.WeeklySummaryLog,
	)

	if _, err := s.cron.AddFunc(s.cfg.DepletionSweep, s.depletionSweep); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.WeeklySummaryLog, s.weeklySummaryLog); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop stops the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	logger.Info(context.Background(), "stopping scheduler")
	s.cron.Stop()
}

// depletionSweep reconciles the derived lot status with the ledger.
// The dispatch path already flips status on exact depletion; the sweep
// catches lots left inconsistent by out-of-band data changes.
func (s *Scheduler) depletionSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	open := lots.StatusOpen
	result, err := s.lotSvc.List(ctx, lots.ListFilter{Status: &open, Limit: -1})
	if err != nil {
		logger.Error(ctx, "depletion sweep: list lots failed", "error", err)
		return
	}

	var swept int
	for _, lot := range result.Items {
		_, remaining, err := s.dispatchSvc.Remaining(ctx, lot.ID)
		if err != nil {
			logger.Error(ctx, "depletion sweep: remaining failed", "lot_id", lot.ID, "error", err)
			continue
		}
		if remaining > 0 {
			continue
		}
		if err := s.lotSvc.MarkDepleted(ctx, lot.ID); err != nil {
			logger.Error(ctx, "depletion sweep: mark depleted failed", "lot_id", lot.ID, "error", err)
			continue
		}
		swept++
	}

	logger.Info(ctx, "depletion sweep finished",
		"open_lots", len(result.Items),
		"marked_depleted", swept,
	)
}

// weeklySummaryLog writes last week's dispatch totals to the log.
func (s *Scheduler) weeklySummaryLog() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := s.reportsSvc.GetSummary(ctx, reports.Period{Kind: reports.PeriodWeek})
	if err != nil {
		logger.Error(ctx, "weekly summary failed", "error", err)
		return
	}

	logger.Info(ctx, "weekly dispatch summary",
		"records", summary.RecordCount,
		"total_quantity", summary.TotalQuantity,
		"total_value", summary.TotalValue,
		"destinations", len(summary.ByDestination),
	)
}
