package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"weathervista/internal/api"
	"weathervista/internal/config"
	"weathervista/internal/db"
	"weathervista/internal/handlers"
	"weathervista/internal/kafka"
	"weathervista/internal/metrics"
	"weathervista/internal/repositories"
	"weathervista/internal/services"
	"weathervista/internal/workers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type HandlersBundle struct {
	WeatherHandler *handlers.WeatherHandler
	// nil when no database is configured
	PopularHandler *handlers.PopularHandler
}

type BootstrapBundle struct {
	Handlers     *HandlersBundle
	Registry     *prometheus.Registry
	Kafka        *kafka.KafkaBundle
	DB           *sql.DB
	Repositories struct {
		LookupRepo *repositories.LookupRepository
	}
}

// InitBootstrap builds every gateway dependency. Kafka and PostgreSQL are
// optional and only started when configured.
func InitBootstrap(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*BootstrapBundle, error) {
	b := &BootstrapBundle{Registry: prometheus.NewRegistry()}
	b.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gatewayMetrics, err := metrics.NewGatewayMetrics(b.Registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	b.Kafka, err = kafka.InitKafka(cfg, logger)
	if err != nil {
		return nil, err
	}

	var producer kafka.ProducerInterface
	if b.Kafka != nil && b.Kafka.LookupProducer != nil {
		b.Kafka.LookupProducer.OnError(func(error) { gatewayMetrics.RecordPublishError() })
		producer = b.Kafka.LookupProducer
	}

	upstream := api.NewClient(cfg.UpstreamBaseURL, cfg.WeatherAPIKey, cfg.EscapeCity, cfg.UpstreamTimeout)
	weatherService := services.NewWeatherService(upstream, producer, gatewayMetrics, logger)

	b.Handlers = &HandlersBundle{
		WeatherHandler: handlers.NewWeatherHandler(weatherService, gatewayMetrics, logger),
	}

	if cfg.DatabaseEnabled() {
		if err := b.initDatabase(ctx, cfg, logger); err != nil {
			b.Kafka.Close()
			return nil, err
		}
	}

	return b, nil
}

func (b *BootstrapBundle) initDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	conn, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	b.DB = conn

	lookupRepo := repositories.NewLookupRepository(conn)
	if err := lookupRepo.Migrate(ctx); err != nil {
		conn.Close()
		return err
	}
	b.Repositories.LookupRepo = lookupRepo
	b.Handlers.PopularHandler = handlers.NewPopularHandler(services.NewPopularService(lookupRepo), logger)

	if b.Kafka != nil && b.Kafka.LookupConsumer != nil {
		workers.StartAllWorkers(ctx, b.Kafka.LookupConsumer, lookupRepo, logger)
	}
	StartCronJobs(ctx, lookupRepo, cfg.LookupRetention, logger)
	return nil
}
