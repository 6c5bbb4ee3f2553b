package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/logger"
	"taskboard/internal/models"
)

// StatsProvider is satisfied by the task service; each call recomputes the
// dashboard aggregates and primes the cache.
type StatsProvider interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// StatsWorker periodically refreshes the dashboard statistics so the cache
// stays warm between invalidations.
type StatsWorker struct {
	provider StatsProvider
	interval time.Duration
}

func NewStatsWorker(provider StatsProvider, interval time.Duration) *StatsWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &StatsWorker{
		provider: provider,
		interval: interval,
	}
}

func (w *StatsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)
		case <-ctx.Done():
			logger.Info("Worker: stats refresh stopping")
			return
		}
	}
}

func (w *StatsWorker) refresh(ctx context.Context) {
	start := time.Now()

	stats, err := w.provider.Stats(ctx)
	if err != nil {
		logger.Warn("Worker: stats refresh failed", zap.Error(err))
		return
	}

	logger.Info("Worker: dashboard stats refreshed",
		zap.Int64("pending", stats.Pending),
		zap.Int64("overdue", stats.Overdue),
		zap.Int64("completed_this_week", stats.CompletedThisWeek),
		zap.Duration("elapsed", time.Since(start)))
}
