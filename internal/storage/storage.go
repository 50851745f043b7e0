// Package storage is the client's local key/value persistence.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"weathervista/internal/db"
)

var ErrNotFound = errors.New("storage: key not found")

const (
	KeyRecentCities = "recentCities"
	KeyLastCity     = "lastCity"
)

// KV holds string values by key. Get returns ErrNotFound for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

type Options struct {
	Backend  string // file, redis or memory
	Path     string
	RedisURL string
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case "", "file":
		path := opts.Path
		if path == "" {
			var err error
			if path, err = DefaultPath(); err != nil {
				return nil, err
			}
		}
		return NewFileStore(path)
	case "redis":
		client, err := db.ConnectRedis(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
}

// DefaultPath is ~/.config/weathervista/storage.json (per the OS config dir).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "weathervista", "storage.json"), nil
}
