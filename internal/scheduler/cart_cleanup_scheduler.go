package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/pkg/logger"
)

// CartCleanupScheduler purges cart lines that have not been touched within
// the configured TTL. Abandoned sessions never come back for them, and stale
// rows are the one thing that grows without bound otherwise.
type CartCleanupScheduler struct {
	cartRepo repository.CartRepository
	ttlDays  int
	cron     *cron.Cron
}

func NewCartCleanupScheduler(cartRepo repository.CartRepository, ttlDays int) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cartRepo: cartRepo,
		ttlDays:  ttlDays,
		cron:     cron.New(),
	}
}

// Start runs the purge once immediately and then every day at 04:00.
func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 4 * * *", s.cleanup)
	if err != nil {
		logger.Error("Failed to schedule cart cleanup", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started", map[string]interface{}{
		"ttl_days": s.ttlDays,
		"schedule": "0 4 * * *",
	})

	go s.cleanup()
	return nil
}

func (s *CartCleanupScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cart cleanup scheduler stopped", nil)
}

func (s *CartCleanupScheduler) cleanup() {
	cutoff := time.Now().AddDate(0, 0, -s.ttlDays)
	logger.Debug("Running cart cleanup", map[string]interface{}{
		"cutoff": cutoff,
	})

	removed, err := s.cartRepo.DeleteStaleBefore(cutoff)
	if err != nil {
		logger.Error("Cart cleanup failed", err, map[string]interface{}{
			"cutoff": cutoff,
		})
		return
	}

	if removed > 0 {
		logger.Info("Stale cart items removed", map[string]interface{}{
			"removed": removed,
			"cutoff":  cutoff,
		})
	}
}
