package workers

import (
	"context"
	"log/slog"
)

type GenericWorker[T any] struct {
	messages <-chan []byte
	handler  WorkerHandler[T]
	sink     Sink[T]
	logger   *slog.Logger
}

type Worker interface {
	Start(ctx context.Context)
}

func NewGenericWorker[T any](
	messages <-chan []byte,
	handler WorkerHandler[T],
	sink Sink[T],
	logger *slog.Logger,
) *GenericWorker[T] {
	return &GenericWorker[T]{
		messages: messages,
		handler:  handler,
		sink:     sink,
		logger:   logger,
	}
}

// Start blocks until ctx is done or messages is closed.
func (w *GenericWorker[T]) Start(ctx context.Context) {
	w.logger.Info("worker started", "type", w.handler.Type())

	for {
		select {
		case value, ok := <-w.messages:
			if !ok {
				w.logger.Info("worker input closed", "type", w.handler.Type())
				return
			}
			item, err := w.handler.Handle(ctx, value)
			if err != nil {
				w.logger.Warn("worker dropped message", "type", w.handler.Type(), "error", err)
				continue
			}
			if err := w.sink.Save(ctx, *item); err != nil {
				w.logger.Error("worker save failed", "type", w.handler.Type(), "error", err)
			}

		case <-ctx.Done():
			w.logger.Info("worker stopped", "type", w.handler.Type())
			return
		}
	}
}
