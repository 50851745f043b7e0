package workers

import (
	"context"
	"log/slog"
)

// RecordSource is satisfied by *kafka.Consumer.
type RecordSource interface {
	Start(ctx context.Context, handler func(key, value []byte))
}

// StartPassthroughMultiplexer forwards every record value to outCh and
// drops records when outCh is full.
func StartPassthroughMultiplexer(ctx context.Context, source RecordSource, outCh chan<- []byte, logger *slog.Logger) {
	if source == nil || outCh == nil {
		return
	}
	source.Start(ctx, func(key, value []byte) {
		select {
		case outCh <- value:
		default:
			logger.Warn("Channel full, dropping message", "key", string(key))
		}
	})
}
