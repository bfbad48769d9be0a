// Package kafka publishes order integration events to the message broker.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ordering/internal/core/ports"

	"github.com/twmb/franz-go/pkg/kgo"
)

// OrderEventPublisher sends order events to a Kafka topic using franz-go.
// Events are keyed by order id so all events of one order land in the same
// partition and stay ordered.
//
// Example:
//
//	publisher, err := NewOrderEventPublisher([]string{"localhost:9092"}, "order-events")
//	if err != nil {
//	    return err
//	}
//	defer publisher.Close()
//
//	event := ports.NewOrderEvent(ports.OrderPlaced, aggregate)
//	err = publisher.Publish(ctx, event)
type OrderEventPublisher struct {
	client *kgo.Client
	topic  string
}

// NewOrderEventPublisher creates a publisher connected to the given brokers.
// Produce requests wait for all in-sync replicas to acknowledge the write.
func NewOrderEventPublisher(brokers []string, topic string) (*OrderEventPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID("ordering"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return &OrderEventPublisher{
		client: client,
		topic:  topic,
	}, nil
}

// Publish sends the event synchronously and returns the first produce error.
func (p *OrderEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.OrderID),
		Value: value,
	}

	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to publish order event %s: %w", event.Kind, err)
	}

	return nil
}

// Close flushes buffered records and releases the client.
func (p *OrderEventPublisher) Close() {
	p.client.Close()
}
