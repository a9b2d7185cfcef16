package usage_cleanup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"vibedocs/internal/config"
	"vibedocs/internal/features/usage"
)

const retentionCleanupInterval = 1 * time.Hour

// UsageCleanupBackgroundService enforces the configured usage ledger
// retention. With retention disabled (0 days) the ledger grows without
// bound, which is the default; deleting old entries is an explicit
// operator decision, never an implicit one.
type UsageCleanupBackgroundService struct {
	usageRepository *usage.UsageRepository
	retentionDays   int
	logger          *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (s *UsageCleanupBackgroundService) StartWorkers() {
	if s.retentionDays <= 0 {
		s.logger.Info("Usage retention disabled, ledger entries are kept forever")
		return
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting usage retention worker",
		slog.Int("retentionDays", s.retentionDays),
		slog.Duration("interval", retentionCleanupInterval))

	s.wg.Add(1)
	go s.retentionWorker()
}

func (s *UsageCleanupBackgroundService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *UsageCleanupBackgroundService) retentionWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(retentionCleanupInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Usage retention worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Usage retention worker shutting down")
			return

		case <-ticker.C:
			if err := s.RunCleanup(); err != nil {
				s.logger.Error("Error during usage retention cleanup", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *UsageCleanupBackgroundService) RunCleanup() error {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)

	deleted, err := s.usageRepository.DeleteOlderThan(cutoff)
	if err != nil {
		return err
	}

	if deleted > 0 {
		s.logger.Info("Removed expired usage entries",
			slog.Int64("deleted", deleted),
			slog.Time("cutoff", cutoff))
	}

	return nil
}
