package background

import (
	"context"
	"log/slog"
	"time"
)

// LifecycleSweeper runs the two item lifecycle sweeps
type LifecycleSweeper interface {
	AutoCleanupOldItems(ctx context.Context) (int64, error)
	HardDeleteOldItems(ctx context.Context) (int64, error)
}

// CleanupManager periodically soft-deletes stale items and purges items
// whose retention period after soft delete has lapsed.
type CleanupManager struct {
	lifecycle LifecycleSweeper
	logger    *slog.Logger
	interval  time.Duration
	stopCh    chan struct{}
}

// NewCleanupManager creates a new cleanup manager
func NewCleanupManager(
	lifecycle LifecycleSweeper,
	logger *slog.Logger,
	interval time.Duration,
) *CleanupManager {
	return &CleanupManager{
		lifecycle: lifecycle,
		logger:    logger,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic cleanup task
func (cm *CleanupManager) Start(ctx context.Context) {
	ticker := time.NewTicker(cm.interval)
	defer ticker.Stop()

	// Run immediately on startup
	cm.runSweeps(ctx)

	for {
		select {
		case <-ticker.C:
			cm.runSweeps(ctx)
		case <-cm.stopCh:
			cm.logger.Info("cleanup manager stopped")
			return
		case <-ctx.Done():
			cm.logger.Info("cleanup manager context cancelled")
			return
		}
	}
}

// runSweeps executes both sweeps. A failure in one sweep does not block
// the other; each is retried on the next tick.
func (cm *CleanupManager) runSweeps(ctx context.Context) {
	cm.logger.Info("starting item lifecycle sweeps")

	sweepCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	softDeleted, err := cm.lifecycle.AutoCleanupOldItems(sweepCtx)
	if err != nil {
		cm.logger.Error("auto cleanup sweep failed", slog.Any("error", err))
	} else if softDeleted > 0 {
		cm.logger.Info("auto cleanup sweep finished", slog.Int64("items_soft_deleted", softDeleted))
	}

	removed, err := cm.lifecycle.HardDeleteOldItems(sweepCtx)
	if err != nil {
		cm.logger.Error("hard delete sweep failed", slog.Any("error", err))
	} else if removed > 0 {
		cm.logger.Info("hard delete sweep finished", slog.Int64("items_removed", removed))
	}
}

// Stop signals the cleanup manager to stop
func (cm *CleanupManager) Stop() {
	close(cm.stopCh)
}
