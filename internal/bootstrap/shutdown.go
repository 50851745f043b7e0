package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// GracefulShutdown drains the HTTP server, then closes Kafka and the database.
func GracefulShutdown(srv *http.Server, b *BootstrapBundle, logger *slog.Logger) error {
	logger.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(ctx)
	if err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if b != nil {
		b.Kafka.Close()
		if b.DB != nil {
			if cerr := b.DB.Close(); cerr != nil {
				logger.Error("PostgreSQL close error", "error", cerr)
			}
		}
	}

	return err
}
