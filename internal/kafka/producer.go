package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

type ProducerInterface interface {
	PublishObjectAsync(key []byte, obj interface{})
}

type Producer struct {
	topic  string
	client *kgo.Client
	logger *slog.Logger
	// onError is called for every failed async publish
	onError func(error)
}

func NewProducer(brokers []string, topic string, logger *slog.Logger) (*Producer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	logger.Info("Kafka producer initialized", "topic", topic, "brokers", brokers)
	return &Producer{topic: topic, client: client, logger: logger}, nil
}

// OnError registers a hook for failed async publishes (metrics).
func (p *Producer) OnError(fn func(error)) {
	p.onError = fn
}

func (p *Producer) Close() {
	p.client.Close()
}

func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	msg := &kgo.Record{
		Topic: p.topic,
		Key:   key,
		Value: value,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	results := p.client.ProduceSync(ctx, msg)
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("publish to %s: %w", p.topic, r.Err)
		}
	}

	p.logger.Debug("Published", "topic", p.topic, "key", string(key))
	return nil
}

func (p *Producer) PublishObjectAsync(key []byte, obj interface{}) {
	go func() {
		value, err := json.Marshal(obj)
		if err != nil {
			p.logger.Error("Failed to marshal object for Kafka", "error", err)
			p.fail(err)
			return
		}

		if err := p.Publish(context.Background(), key, value); err != nil {
			p.logger.Error("Kafka async publish error", "error", err)
			p.fail(err)
		}
	}()
}

func (p *Producer) fail(err error) {
	if p.onError != nil {
		p.onError(err)
	}
}
