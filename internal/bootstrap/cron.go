package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"weathervista/internal/cron"
)

func StartCronJobs(ctx context.Context, repo cron.LookupDeleter, retention time.Duration, logger *slog.Logger) {
	pruner := cron.NewLookupPruner(repo, retention, time.Hour, logger)
	go pruner.Start(ctx)
}
