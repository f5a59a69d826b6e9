package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"userhub-core/internal/application/service"
	"userhub-core/internal/config"
)

// KafkaPublisher implements the service.EventPublisher port on top of a
// synchronous Kafka producer. Send does not return until every in-sync
// replica has acknowledged the message, which is what lets the lifecycle
// transaction couple a store write to its event.
type KafkaPublisher struct {
	producer sarama.SyncProducer
}

// NewKafkaPublisher creates a publisher connected to the given brokers
func NewKafkaPublisher(cfg *config.KafkaConfig) (*KafkaPublisher, error) {
	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return &KafkaPublisher{producer: producer}, nil
}

// Send publishes a JSON-encoded payload keyed for partitioning and blocks
// for the broker acknowledgment.
func (p *KafkaPublisher) Send(ctx context.Context, topic, key string, payload any) (*service.DeliveryInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send message to %s: %w", topic, err)
	}

	return &service.DeliveryInfo{
		Topic:     topic,
		Partition: partition,
		Offset:    offset,
	}, nil
}

// Close shuts down the underlying producer
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
