package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"weathervista/internal/bootstrap"
	"weathervista/internal/config"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.WeatherAPIKey == "" {
		logger.Error("OPENWEATHER_API_KEY is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bundle, err := bootstrap.InitBootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize gateway", "error", err)
		os.Exit(1)
	}

	router := bootstrap.InitRoutes(
		bundle.Handlers.WeatherHandler,
		bundle.Handlers.PopularHandler,
		bundle.Registry,
		logger,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server started", "port", cfg.Port,
			"kafka", cfg.KafkaEnabled(), "database", cfg.DatabaseEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return bootstrap.GracefulShutdown(srv, bundle, logger)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Gateway stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server exited cleanly")
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
