package workers

import (
	"context"
	"log/slog"

	"weathervista/internal/models"
)

const lookupBuffer = 100

type WorkerBundle struct {
	LookupWorker *GenericWorker[models.LookupEvent]
}

// StartAllWorkers pipes lookup events from source into sink until ctx ends.
// It returns nil when either side is missing.
func StartAllWorkers(ctx context.Context, source RecordSource, sink Sink[models.LookupEvent], logger *slog.Logger) *WorkerBundle {
	if source == nil || sink == nil {
		return nil
	}

	lookupCh := make(chan []byte, lookupBuffer)
	StartPassthroughMultiplexer(ctx, source, lookupCh, logger)

	lookupWorker := NewGenericWorker[models.LookupEvent](lookupCh, LookupWorkerHandler{}, sink, logger)
	go lookupWorker.Start(ctx)

	return &WorkerBundle{LookupWorker: lookupWorker}
}
