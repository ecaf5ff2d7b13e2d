package service

import (
	"context"
	"time"

	"golang-stock-resultstore/internal/results/config"
	"golang-stock-resultstore/internal/results/repository"
	"golang-stock-resultstore/pkg/logger"

	"github.com/robfig/cron/v3"
)

// PrunerService periodically removes tickers that have not been refreshed
// within the retention window.
type PrunerService interface {
	Start(ctx context.Context) error
	Stop()
	PruneOnce(ctx context.Context) error
}

// NewPrunerService creates a new PrunerService.
func NewPrunerService(cfg *config.Config, snapshotRepo repository.StockSnapshotRepository, log *logger.Logger) PrunerService {
	return &prunerService{
		cfg:          cfg,
		snapshotRepo: snapshotRepo,
		logger:       log,
		cron:         cron.New(),
	}
}

type prunerService struct {
	cfg          *config.Config
	snapshotRepo repository.StockSnapshotRepository
	logger       *logger.Logger
	cron         *cron.Cron
}

// Start schedules the prune job with the configured cron expression.
func (s *prunerService) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Pruner.Schedule, func() {
		if err := s.PruneOnce(ctx); err != nil {
			s.logger.Error("Scheduled prune failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Pruner started",
		logger.StringField("schedule", s.cfg.Pruner.Schedule),
		logger.Field("retention", s.cfg.Pruner.Retention))
	return nil
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *prunerService) Stop() {
	<-s.cron.Stop().Done()
}

// PruneOnce removes all row sets older than the retention window.
func (s *prunerService) PruneOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-s.cfg.Pruner.Retention)
	tickers, err := s.snapshotRepo.DeleteStale(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(tickers) > 0 {
		s.logger.Info("Pruned stale stocks",
			logger.IntField("count", len(tickers)),
			logger.Field("tickers", tickers))
	}
	return nil
}
