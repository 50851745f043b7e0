package cron

import (
	"context"
	"log/slog"
	"time"
)

type LookupDeleter interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// LookupPruner drops lookup rows older than the retention window.
type LookupPruner struct {
	repo      LookupDeleter
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewLookupPruner(repo LookupDeleter, retention, interval time.Duration, logger *slog.Logger) *LookupPruner {
	return &LookupPruner{
		repo:      repo,
		retention: retention,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

func (p *LookupPruner) Start(ctx context.Context) {
	p.logger.Info("LookupPruner started", "interval", p.interval, "retention", p.retention)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := p.RunOnce(ctx); err != nil {
				p.logger.Error("LookupPruner iteration failed", "error", err)
			}

		case <-ctx.Done():
			p.logger.Info("LookupPruner stopped")
			return
		}
	}
}

func (p *LookupPruner) RunOnce(ctx context.Context) (int64, error) {
	cutoff := p.now().Add(-p.retention)
	n, err := p.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		p.logger.Info("Pruned lookups", "count", n, "cutoff", cutoff)
	}
	return n, nil
}
