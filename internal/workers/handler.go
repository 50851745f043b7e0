package workers

import "context"

// WorkerHandler decodes one raw message into a T.
type WorkerHandler[T any] interface {
	Type() string
	Handle(ctx context.Context, value []byte) (*T, error)
}

// Sink persists handled messages.
type Sink[T any] interface {
	Save(ctx context.Context, item T) error
}
