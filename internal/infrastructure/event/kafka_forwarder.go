package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/shared"
)

// MessageWriter is the subset of kafka.Writer the forwarder uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConfig holds broker settings for the forwarder
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// KafkaForwarder is an EventHandler that writes events to a Kafka topic,
// keyed by society so a society's events stay ordered on one partition.
type KafkaForwarder struct {
	writer     MessageWriter
	serializer *EventSerializer
	eventTypes []string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewKafkaWriter creates a kafka.Writer for cfg
func NewKafkaWriter(cfg KafkaConfig) (*kafka.Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka forwarder requires at least one broker")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka forwarder requires a topic")
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: false,
	}, nil
}

// NewKafkaForwarder creates a forwarder for eventTypes; none means all events
func NewKafkaForwarder(writer MessageWriter, serializer *EventSerializer, timeout time.Duration, logger *zap.Logger, eventTypes ...string) *KafkaForwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaForwarder{
		writer:     writer,
		serializer: serializer,
		eventTypes: eventTypes,
		timeout:    timeout,
		logger:     logger,
	}
}

// Handle writes event to the topic
func (f *KafkaForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	value, err := f.serializer.Encode(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.SocietyID()),
		Value: value,
		Time:  event.OccurredAt().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
			{Key: "event_id", Value: []byte(event.EventID().String())},
		},
	}
	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to forward %s to kafka: %w", event.EventType(), err)
	}

	f.logger.Debug("Event forwarded to kafka",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
	)
	return nil
}

// EventTypes returns the forwarded event types
func (f *KafkaForwarder) EventTypes() []string {
	return f.eventTypes
}

// Close closes the underlying writer
func (f *KafkaForwarder) Close() error {
	return f.writer.Close()
}

var _ shared.EventHandler = (*KafkaForwarder)(nil)
