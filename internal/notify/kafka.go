// Package notify forwards domain events to external systems.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/osse101/geotreasure/internal/event"
	"github.com/osse101/geotreasure/internal/logger"
)

// producer is the subset of *kgo.Client the forwarder needs
type producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	Flush(ctx context.Context) error
	Close()
}

// KafkaForwarder publishes every bus event to a Kafka topic, keyed by the
// owner the event concerns so one owner's events stay ordered within a partition.
type KafkaForwarder struct {
	client producer
	topic  string
}

// NewKafkaForwarder connects to brokers and produces to topic
func NewKafkaForwarder(brokers []string, topic string) (*KafkaForwarder, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(DefaultProducerLinger),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return newKafkaForwarder(client, topic), nil
}

func newKafkaForwarder(client producer, topic string) *KafkaForwarder {
	return &KafkaForwarder{client: client, topic: topic}
}

// Register subscribes the forwarder to every event type
func (f *KafkaForwarder) Register(bus event.Bus) {
	event.SubscribeAll(bus, f.HandleEvent)
	logger.Info(LogMsgForwarderStarted, "topic", f.topic)
}

// HandleEvent queues evt for asynchronous delivery. Delivery failures are
// logged from the produce callback; they never fail the publisher.
func (f *KafkaForwarder) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	value, err := json.Marshal(evt)
	if err != nil {
		log.Error(LogMsgEventMarshalFailed, "type", evt.Type, "error", err)
		return err
	}

	record := &kgo.Record{
		Topic: f.topic,
		Key:   []byte(partitionKey(evt)),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: HeaderEventType, Value: []byte(evt.Type)},
			{Key: HeaderEventVersion, Value: []byte(evt.Version)},
		},
	}

	f.client.Produce(context.WithoutCancel(ctx), record, func(r *kgo.Record, err error) {
		if err != nil {
			log.Error(LogMsgForwardFailed, "type", evt.Type, "topic", r.Topic, "error", err)
		}
	})
	return nil
}

// Shutdown flushes buffered records and closes the client
func (f *KafkaForwarder) Shutdown(ctx context.Context) error {
	err := f.client.Flush(ctx)
	f.client.Close()
	logger.FromContext(ctx).Info(LogMsgForwarderFlushed, "topic", f.topic)
	return err
}

// partitionKey keeps one owner's events on one partition
func partitionKey(evt event.Event) string {
	if subject := event.Subject(evt); subject != "" {
		return subject
	}
	return string(evt.Type)
}
