package kafka

import (
	"log/slog"

	"weathervista/internal/config"
)

const lookupGroup = "weather-lookup-syncer"

type KafkaBundle struct {
	LookupProducer *Producer
	LookupConsumer *Consumer
}

// InitKafka returns nil when no brokers are configured.
func InitKafka(cfg *config.Config, logger *slog.Logger) (*KafkaBundle, error) {
	if !cfg.KafkaEnabled() {
		logger.Info("Kafka disabled: KAFKA_BROKERS not set")
		return nil, nil
	}

	producer, err := NewProducer(cfg.KafkaBrokers, cfg.LookupTopic, logger)
	if err != nil {
		return nil, err
	}

	var consumer *Consumer
	if cfg.DatabaseEnabled() {
		consumer, err = NewConsumer(cfg.KafkaBrokers, cfg.LookupTopic, lookupGroup, logger)
		if err != nil {
			producer.Close()
			return nil, err
		}
	}

	return &KafkaBundle{
		LookupProducer: producer,
		LookupConsumer: consumer,
	}, nil
}

// Close is safe on a nil bundle.
func (b *KafkaBundle) Close() {
	if b == nil {
		return
	}
	if b.LookupConsumer != nil {
		b.LookupConsumer.Stop()
	}
	if b.LookupProducer != nil {
		b.LookupProducer.Close()
	}
}
